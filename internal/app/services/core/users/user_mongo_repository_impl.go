package users

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserMongoRepository struct {
	Collection *mongo.Collection
}

func NewUserMongoRepository(db *mongo.Database) contracts.UserRepository {
	return &UserMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionUsers),
	}
}

func (repo *UserMongoRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, user)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *UserMongoRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	return repo.findOne(ctx, bson.M{"_id": objectID})
}

func (repo *UserMongoRepository) FindByEmailAndRole(ctx context.Context, email, role string) (*models.User, error) {
	return repo.findOne(ctx, bson.M{"email": email, "role": role})
}

func (repo *UserMongoRepository) FindDoctorsByDepartment(ctx context.Context, department string) ([]models.User, error) {
	filter := bson.M{"role": constvars.RoleDoctor, "doctorDepartment": department}
	cursor, err := repo.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	doctors := []models.User{}
	err = cursor.All(ctx, &doctors)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return doctors, nil
}

func (repo *UserMongoRepository) FindPatientByNICOrEmail(ctx context.Context, nic, email string) (*models.User, error) {
	or := bson.A{}
	if nic != "" {
		or = append(or, bson.M{"nic": nic})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return nil, nil
	}
	return repo.findOne(ctx, bson.M{"role": constvars.RolePatient, "$or": or})
}

// FindPatientIDsMatching returns the hex ids of patients whose name, phone or
// email contains query, case-insensitively.
func (repo *UserMongoRepository) FindPatientIDsMatching(ctx context.Context, query string) ([]string, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"role": constvars.RolePatient,
		"$or": bson.A{
			bson.M{"firstName": pattern},
			bson.M{"lastName": pattern},
			bson.M{"phone": pattern},
			bson.M{"email": pattern},
		},
	}
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetLimit(constvars.AppDefaultPageSize)
	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err = cursor.All(ctx, &rows)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID.Hex())
	}
	return ids, nil
}

func (repo *UserMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := repo.Collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &user, nil
}
