// Command report prints the daily sales report for a date range.
//
// Usage:
//
//	report -from 2025-06-01 -to 2025-06-08
//
// Bounds default to the last seven days. Database settings come from
// the same .env file as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"restaurant/cmd"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/olekukonko/tablewriter"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const dayFormat = "2006-01-02"

func main() {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	fromFlag := flag.String("from", now.AddDate(0, 0, -7).Format(dayFormat), "range start (inclusive), YYYY-MM-DD")
	toFlag := flag.String("to", now.AddDate(0, 0, 1).Format(dayFormat), "range end (exclusive), YYYY-MM-DD")
	flag.Parse()

	from, err := time.Parse(dayFormat, *fromFlag)
	if err != nil {
		log.Fatalf("Invalid -from date: %v", err)
	}
	to, err := time.Parse(dayFormat, *toFlag)
	if err != nil {
		log.Fatalf("Invalid -to date: %v", err)
	}

	configs := getConfigs()
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	query, err := queries.NewGetSalesReportQuery(from, to)
	if err != nil {
		log.Fatalf("Invalid date range: %v", err)
	}

	handler := queries.NewGetSalesReportQueryHandler(db)
	rows, err := handler.Handle(context.Background(), query)
	if err != nil {
		log.Fatalf("Failed to build report: %v", err)
	}

	if err = render(rows); err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}
	return cmd.Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),
	}
}

func render(rows []queries.GetSalesReportQueryResponse) error {
	var orders int
	var revenue int64
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Day", "Orders", "Revenue")

	for _, row := range rows {
		if err := table.Append(row.Day.Format(dayFormat), row.Orders, row.Revenue.Format()); err != nil {
			return err
		}
		orders += row.Orders
		revenue += row.Revenue.Amount()
	}

	total, err := kernel.NewMoney(revenue)
	if err != nil {
		return err
	}
	table.Footer("Total", orders, total.Format())

	return table.Render()
}
