package queries_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetSalesReportQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetSalesReportQueryHandler
}

func (suite *GetSalesReportQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))

	suite.handler = queries.NewGetSalesReportQueryHandler(db)
}

func (suite *GetSalesReportQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetSalesReportQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
}

func (suite *GetSalesReportQueryHandlerTestSuite) seedOrder(status order.Status, amount int64, createdAt time.Time) {
	price, err := kernel.NewMoney(amount)
	suite.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Kebap", price, 1, "")
	suite.Require().NoError(err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), order.TypeTakeaway, []order.LineItem{item},
		status, order.PaymentPaid, order.PaymentMethodCash, order.DeliveryNotApplicable,
		nil, "Mehmet", "", nil, createdAt, createdAt)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), o))
}

func (suite *GetSalesReportQueryHandlerTestSuite) TestHandle_GroupsCompletedOrdersPerDay() {
	monday := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	tuesday := monday.Add(24 * time.Hour)

	suite.seedOrder(order.Completed, 10000, monday)
	suite.seedOrder(order.Completed, 15000, monday.Add(2*time.Hour))
	suite.seedOrder(order.Completed, 8000, tuesday)
	suite.seedOrder(order.Cancelled, 99900, monday)
	suite.seedOrder(order.Pending, 7000, tuesday)

	query, err := queries.NewGetSalesReportQuery(monday.Add(-time.Hour), tuesday.Add(24*time.Hour))
	suite.Require().NoError(err)

	report, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(report, 2)

	suite.Equal(2, report[0].Orders)
	suite.Equal(int64(25000), report[0].Revenue.Amount())
	suite.Equal(1, report[1].Orders)
	suite.Equal(int64(8000), report[1].Revenue.Amount())
}

func (suite *GetSalesReportQueryHandlerTestSuite) TestHandle_RangeIsHalfOpen() {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	suite.seedOrder(order.Completed, 10000, monday)

	query, err := queries.NewGetSalesReportQuery(monday.Add(-24*time.Hour), monday)
	suite.Require().NoError(err)

	report, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(report)
}

func (suite *GetSalesReportQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.GetSalesReportQuery

	report, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.Require().ErrorIs(err, queries.ErrGetSalesReportQueryIsNotConstructed)
}

func TestGetSalesReportQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetSalesReportQueryHandlerTestSuite))
}
