package dao

import "gorm.io/gorm"

// InitTables creates the tables used by the postgres driver.
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Item{},
	)
}

// dropAllTables removes every table in the public schema.
func dropAllTables(db *gorm.DB) error {
	var tableNames []string
	if err := db.Table("information_schema.tables").
		Where("table_schema = ?", "public").
		Pluck("table_name", &tableNames).Error; err != nil {
		return err
	}

	for _, tableName := range tableNames {
		if err := db.Exec("DROP TABLE IF EXISTS " + tableName + " CASCADE").Error; err != nil {
			return err
		}
	}

	return nil
}
