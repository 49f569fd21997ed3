package reports

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReportMongoRepository struct {
	Collection *mongo.Collection
}

func NewReportMongoRepository(db *mongo.Database) contracts.ReportRepository {
	return &ReportMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionReports),
	}
}

func (repo *ReportMongoRepository) UpsertByAppointmentID(ctx context.Context, report *models.Report) error {
	filter := bson.M{"appointmentId": report.AppointmentID}
	update := bson.M{
		"$set": bson.M{
			"doctorId":        report.DoctorID,
			"patientId":       report.PatientID,
			"appointmentDate": report.AppointmentDate,
			"amount":          report.Amount,
			"paid":            report.Paid,
			"due":             report.Due,
			"revenue":         report.Revenue,
			"status":          report.Status,
			"notes":           report.Notes,
			"createdBy":       report.CreatedBy,
			"updatedAt":       report.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"createdAt": report.CreatedAt,
		},
	}

	_, err := repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *ReportMongoRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*models.Report, error) {
	var report models.Report
	err := repo.Collection.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &report, nil
}

func (repo *ReportMongoRepository) DeleteByAppointmentID(ctx context.Context, appointmentID string) error {
	_, err := repo.Collection.DeleteMany(ctx, bson.M{"appointmentId": appointmentID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
