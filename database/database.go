package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo        *UserRepo
	categoryRepo    *CategoryRepo
	projectRepo     *ProjectRepo
	projectTagRepo  *ProjectTagRepo
	projectViewRepo *ProjectViewRepo
	reviewRepo      *ReviewRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:        NewUserRepo(db),
		categoryRepo:    NewCategoryRepo(db),
		projectRepo:     NewProjectRepo(db),
		projectTagRepo:  NewProjectTagRepo(db),
		projectViewRepo: NewProjectViewRepo(db),
		reviewRepo:      NewReviewRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectTagRepo() *ProjectTagRepo {
	return d.projectTagRepo
}

func (d Database) ProjectViewRepo() *ProjectViewRepo {
	return d.projectViewRepo
}

func (d Database) ReviewRepo() *ReviewRepo {
	return d.reviewRepo
}
