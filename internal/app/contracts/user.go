package contracts

import (
	"clinic-service/internal/app/models"
	"context"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (string, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmailAndRole(ctx context.Context, email, role string) (*models.User, error)
	FindDoctorsByDepartment(ctx context.Context, department string) ([]models.User, error)
	FindPatientByNICOrEmail(ctx context.Context, nic, email string) (*models.User, error)
	FindPatientIDsMatching(ctx context.Context, query string) ([]string, error)
}
