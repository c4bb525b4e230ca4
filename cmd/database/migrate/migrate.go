package migration

import (
	"SpendLens-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Transaction{}); err != nil {
		log.Fatalf("Error migrating transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Receipt{}); err != nil {
		log.Fatalf("Error migrating receipt database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Budget{}); err != nil {
		log.Fatalf("Error migrating budget database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Advice{}); err != nil {
		log.Fatalf("Error migrating advice database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
