package invoices

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InvoiceMongoRepository struct {
	Collection *mongo.Collection
}

func NewInvoiceMongoRepository(db *mongo.Database) contracts.InvoiceRepository {
	return &InvoiceMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionInvoices),
	}
}

func (repo *InvoiceMongoRepository) CreateInvoice(ctx context.Context, invoice *models.Invoice) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, invoice)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *InvoiceMongoRepository) FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	objectID, err := primitive.ObjectIDFromHex(invoiceID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var invoice models.Invoice
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&invoice)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &invoice, nil
}

func (repo *InvoiceMongoRepository) FindByIDs(ctx context.Context, invoiceIDs []string) ([]models.Invoice, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(invoiceIDs))
	for _, id := range invoiceIDs {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}
	if len(objectIDs) == 0 {
		return []models.Invoice{}, nil
	}
	return repo.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
}

func (repo *InvoiceMongoRepository) FindByAppointmentID(ctx context.Context, appointmentID string) ([]models.Invoice, error) {
	return repo.find(ctx, bson.M{"appointment": appointmentID})
}

func (repo *InvoiceMongoRepository) FindByFilter(ctx context.Context, filter *requests.InvoiceFilter) ([]models.Invoice, int64, error) {
	query := bson.M{}
	if filter.Patient != "" {
		query["patient"] = filter.Patient
	}
	if filter.Doctor != "" {
		query["doctor"] = filter.Doctor
	}
	if filter.Appointment != "" {
		query["appointment"] = filter.Appointment
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Q != "" {
		query["invoiceNumber"] = caseInsensitive(filter.Q)
	}
	if issued := timeRange(filter.Start, filter.End); issued != nil {
		query["issuedAt"] = issued
	}

	total, err := repo.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "issuedAt", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))
	invoices, err := repo.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (repo *InvoiceMongoRepository) FindIssuedBetween(ctx context.Context, start, end *time.Time, doctorID string) ([]models.Invoice, error) {
	query := bson.M{}
	if issued := timeRange(start, end); issued != nil {
		query["issuedAt"] = issued
	}
	if doctorID != "" {
		query["doctor"] = doctorID
	}
	return repo.find(ctx, query, options.Find().SetSort(bson.D{{Key: "issuedAt", Value: 1}}))
}

func (repo *InvoiceMongoRepository) Search(ctx context.Context, query string, patientIDs []string) ([]models.Invoice, error) {
	or := bson.A{bson.M{"invoiceNumber": caseInsensitive(query)}}
	if len(patientIDs) > 0 {
		or = append(or, bson.M{"patient": bson.M{"$in": patientIDs}})
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "issuedAt", Value: -1}}).
		SetLimit(constvars.AppDefaultPageSize)
	return repo.find(ctx, bson.M{"$or": or}, opts)
}

func (repo *InvoiceMongoRepository) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	objectID, err := primitive.ObjectIDFromHex(invoice.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"invoiceNumber": invoice.InvoiceNumber,
		"items":         invoice.Items,
		"subtotal":      invoice.Subtotal,
		"tax":           invoice.Tax,
		"discount":      invoice.Discount,
		"total":         invoice.Total,
		"status":        invoice.Status,
		"dueDate":       invoice.DueDate,
		"payments":      invoice.Payments,
		"updatedAt":     invoice.UpdatedAt,
	}}
	_, err = repo.Collection.UpdateByID(ctx, objectID, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *InvoiceMongoRepository) DeleteByID(ctx context.Context, invoiceID string) error {
	objectID, err := primitive.ObjectIDFromHex(invoiceID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (repo *InvoiceMongoRepository) DeleteByAppointmentID(ctx context.Context, appointmentID string) (int64, error) {
	result, err := repo.Collection.DeleteMany(ctx, bson.M{"appointment": appointmentID})
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}

func (repo *InvoiceMongoRepository) find(ctx context.Context, query bson.M, opts ...*options.FindOptions) ([]models.Invoice, error) {
	cursor, err := repo.Collection.Find(ctx, query, opts...)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	invoices := []models.Invoice{}
	err = cursor.All(ctx, &invoices)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return invoices, nil
}

func caseInsensitive(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

func timeRange(start, end *time.Time) bson.M {
	if start == nil && end == nil {
		return nil
	}
	r := bson.M{}
	if start != nil {
		r["$gte"] = *start
	}
	if end != nil {
		r["$lte"] = *end
	}
	return r
}
