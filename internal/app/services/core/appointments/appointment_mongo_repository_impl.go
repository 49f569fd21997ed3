package appointments

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAppointments),
	}
}

func (repo *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var appointment models.Appointment
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (repo *AppointmentMongoRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{"patientId": patientID})
}

func (repo *AppointmentMongoRepository) Search(ctx context.Context, name, phone string) ([]models.Appointment, error) {
	query := bson.M{}
	if name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
	}
	if phone != "" {
		query["phone"] = phone
	}
	return repo.find(ctx, query, options.Find().SetSort(bson.D{{Key: "appointment_date", Value: -1}}))
}

func (repo *AppointmentMongoRepository) FindWithoutInvoices(ctx context.Context, start, end *time.Time, doctorID string) ([]models.Appointment, error) {
	query := bson.M{
		"$or": bson.A{
			bson.M{"invoices": bson.M{"$exists": false}},
			bson.M{"invoices": bson.M{"$size": 0}},
		},
	}
	lower, upper := utils.AppointmentDateBounds(start, end)
	dateRange := bson.M{}
	if lower != "" {
		dateRange["$gte"] = lower
	}
	if upper != "" {
		dateRange["$lte"] = upper
	}
	if len(dateRange) > 0 {
		query["appointment_date"] = dateRange
	}
	if doctorID != "" {
		query["doctorId"] = doctorID
	}
	return repo.find(ctx, query)
}

func (repo *AppointmentMongoRepository) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	objectID, err := primitive.ObjectIDFromHex(appointment.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"status":           appointment.Status,
		"paymentStatus":    appointment.PaymentStatus,
		"appointment_date": appointment.AppointmentDate,
		"department":       appointment.Department,
		"address":          appointment.Address,
		"hasVisited":       appointment.HasVisited,
		"result":           appointment.Result,
		"updatedAt":        appointment.UpdatedAt,
	}}
	_, err = repo.Collection.UpdateByID(ctx, objectID, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) AddInvoice(ctx context.Context, appointmentID, invoiceID string) error {
	return repo.updateInvoices(ctx, appointmentID, bson.M{"$addToSet": bson.M{"invoices": invoiceID}})
}

func (repo *AppointmentMongoRepository) RemoveInvoice(ctx context.Context, appointmentID, invoiceID string) error {
	return repo.updateInvoices(ctx, appointmentID, bson.M{"$pull": bson.M{"invoices": invoiceID}})
}

func (repo *AppointmentMongoRepository) DeleteByID(ctx context.Context, appointmentID string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) updateInvoices(ctx context.Context, appointmentID string, update bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = repo.Collection.UpdateByID(ctx, objectID, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) find(ctx context.Context, query bson.M, opts ...*options.FindOptions) ([]models.Appointment, error) {
	cursor, err := repo.Collection.Find(ctx, query, opts...)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	appointments := []models.Appointment{}
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
