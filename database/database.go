package database

import (
	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB

	projectRepo      *ProjectRepo
	projectImageRepo *ProjectImageRepo
	enquiryRepo      *EnquiryRepo
	serviceRepo      *ServiceRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:               db,
		projectRepo:      NewProjectRepo(db),
		projectImageRepo: NewProjectImageRepo(db),
		enquiryRepo:      NewEnquiryRepo(db),
		serviceRepo:      NewServiceRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectImageRepo() *ProjectImageRepo {
	return d.projectImageRepo
}

func (d Database) EnquiryRepo() *EnquiryRepo {
	return d.enquiryRepo
}

func (d Database) ServiceRepo() *ServiceRepo {
	return d.serviceRepo
}

// Transaction runs fn against a transactional view of every repository. A
// returned error rolls the whole batch back. Storage calls made inside fn are
// not covered by the rollback.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping verifies the underlying connection is alive.
func (d Database) Ping() error {
	var result int
	return d.db.Raw("SELECT 1").Scan(&result).Error
}
