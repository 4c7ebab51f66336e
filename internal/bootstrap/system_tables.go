package bootstrap

import (
	"fmt"

	"github.com/Andtit4/site-database-sub001/internal/infrastructure/persistence"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
)

// SystemTable is a core table created at startup
type SystemTable struct {
	Name string
	DDL  string
}

// GetSystemTables returns the core tables in creation order (FK parents first)
func GetSystemTables() []SystemTable {
	return []SystemTable{
		{Name: constants.TableUser, DDL: fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (\n"+
			"  `id` VARCHAR(36) NOT NULL PRIMARY KEY,\n"+
			"  `email` VARCHAR(255) NOT NULL,\n"+
			"  `name` VARCHAR(255) NOT NULL,\n"+
			"  `password_hash` VARCHAR(255) NOT NULL,\n"+
			"  `role` VARCHAR(20) NOT NULL DEFAULT 'user',\n"+
			"  `created_at` TIMESTAMP DEFAULT CURRENT_TIMESTAMP,\n"+
			"  `updated_at` TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,\n"+
			"  UNIQUE KEY `uq_users_email` (`email`)\n"+
			") %s", constants.TableUser, persistence.TableOptions)},

		{Name: constants.TableSite, DDL: fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (\n"+
			"  `id` VARCHAR(36) NOT NULL PRIMARY KEY,\n"+
			"  `name` VARCHAR(255) NOT NULL,\n"+
			"  `site_type` VARCHAR(64) NOT NULL,\n"+
			"  `region` VARCHAR(255) NULL,\n"+
			"  `latitude` DOUBLE NULL,\n"+
			"  `longitude` DOUBLE NULL,\n"+
			"  `status` VARCHAR(20) NOT NULL DEFAULT 'active',\n"+
			"  `created_at` TIMESTAMP DEFAULT CURRENT_TIMESTAMP,\n"+
			"  `updated_at` TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,\n"+
			"  KEY `idx_site_type` (`site_type`)\n"+
			") %s", constants.TableSite, persistence.TableOptions)},

		{Name: constants.TableEquipment, DDL: fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (\n"+
			"  `id` VARCHAR(36) NOT NULL PRIMARY KEY,\n"+
			"  `site_id` VARCHAR(36) NOT NULL,\n"+
			"  `name` VARCHAR(255) NOT NULL,\n"+
			"  `equipment_type` VARCHAR(64) NOT NULL,\n"+
			"  `model` VARCHAR(255) NULL,\n"+
			"  `manufacturer` VARCHAR(255) NULL,\n"+
			"  `status` VARCHAR(20) NOT NULL DEFAULT 'active',\n"+
			"  `created_at` TIMESTAMP DEFAULT CURRENT_TIMESTAMP,\n"+
			"  `updated_at` TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,\n"+
			"  KEY `idx_equipment_type` (`equipment_type`),\n"+
			"  CONSTRAINT `fk_equipment_site` FOREIGN KEY (`site_id`) REFERENCES `site` (`id`) ON DELETE CASCADE\n"+
			") %s", constants.TableEquipment, persistence.TableOptions)},

		{Name: constants.TableSpecification, DDL: specificationTableDDL(constants.TableSpecification, constants.FieldSpec_EquipmentType)},
		{Name: constants.TableSiteSpecification, DDL: specificationTableDDL(constants.TableSiteSpecification, constants.FieldSpec_SiteType)},

		{Name: constants.TableNotification, DDL: fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (\n"+
			"  `id` VARCHAR(36) NOT NULL PRIMARY KEY,\n"+
			"  `title` VARCHAR(255) NOT NULL,\n"+
			"  `message` TEXT NOT NULL,\n"+
			"  `type` VARCHAR(20) NOT NULL DEFAULT 'info',\n"+
			"  `is_read` BOOLEAN NOT NULL DEFAULT FALSE,\n"+
			"  `created_at` TIMESTAMP DEFAULT CURRENT_TIMESTAMP,\n"+
			"  KEY `idx_notifications_unread` (`is_read`, `created_at`)\n"+
			") %s", constants.TableNotification, persistence.TableOptions)},
	}
}

// specificationTableDDL builds a metadata table. The unique type key makes
// concurrent creates for the same type fail with a duplicate entry.
func specificationTableDDL(table, typeColumn string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (\n"+
		"  `id` VARCHAR(36) NOT NULL PRIMARY KEY,\n"+
		"  `%s` VARCHAR(64) NOT NULL,\n"+
		"  `columns` JSON NOT NULL,\n"+
		"  `created_at` TIMESTAMP DEFAULT CURRENT_TIMESTAMP,\n"+
		"  `updated_at` TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,\n"+
		"  UNIQUE KEY `uq_%s_type` (`%s`)\n"+
		") %s", table, typeColumn, table, typeColumn, persistence.TableOptions)
}
