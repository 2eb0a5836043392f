package snapshotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glowbook/config"
	"glowbook/database"
	"glowbook/models"
)

const (
	appointmentCollection = "appointment_snapshots"
	walletCollection      = "wallet_snapshots"
)

type appointmentSnapshotDoc struct {
	AccountID    string               `bson:"account_id"`
	Appointments []models.Appointment `bson:"appointments"`
	FetchedAt    time.Time            `bson:"fetched_at"`
}

type walletSnapshotDoc struct {
	AccountID string        `bson:"account_id"`
	Wallet    models.Wallet `bson:"wallet"`
	FetchedAt time.Time     `bson:"fetched_at"`
}

// MongoSnapshotRepo stores per-account projections in MongoDB, one document
// per account per collection.
type MongoSnapshotRepo struct {
	db *mongo.Database
}

func NewMongoSnapshotRepo() *MongoSnapshotRepo {
	return &MongoSnapshotRepo{
		db: database.MongoClient.Database(config.AppConfig.DatabaseName),
	}
}

func (r *MongoSnapshotRepo) GetAppointments(ctx context.Context, accountID string) ([]models.Appointment, error) {
	var doc appointmentSnapshotDoc
	err := r.db.Collection(appointmentCollection).
		FindOne(ctx, bson.M{"account_id": accountID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment snapshot: %w", err)
	}
	return doc.Appointments, nil
}

func (r *MongoSnapshotRepo) ReplaceAppointments(ctx context.Context, accountID string, appointments []models.Appointment) error {
	doc := appointmentSnapshotDoc{
		AccountID:    accountID,
		Appointments: appointments,
		FetchedAt:    time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.db.Collection(appointmentCollection).
		ReplaceOne(ctx, bson.M{"account_id": accountID}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to replace appointment snapshot: %w", err)
	}
	return nil
}

func (r *MongoSnapshotRepo) UpsertAppointment(ctx context.Context, accountID string, appt models.Appointment) error {
	appointments, err := r.GetAppointments(ctx, accountID)
	if err != nil && err != ErrNotFound {
		return err
	}

	replaced := false
	for i := range appointments {
		if appointments[i].ID == appt.ID {
			appointments[i] = appt
			replaced = true
			break
		}
	}
	if !replaced {
		appointments = append(appointments, appt)
	}
	return r.ReplaceAppointments(ctx, accountID, appointments)
}

func (r *MongoSnapshotRepo) GetWallet(ctx context.Context, accountID string) (*models.Wallet, error) {
	var doc walletSnapshotDoc
	err := r.db.Collection(walletCollection).
		FindOne(ctx, bson.M{"account_id": accountID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet snapshot: %w", err)
	}
	return &doc.Wallet, nil
}

func (r *MongoSnapshotRepo) ReplaceWallet(ctx context.Context, accountID string, wallet models.Wallet) error {
	doc := walletSnapshotDoc{
		AccountID: accountID,
		Wallet:    wallet,
		FetchedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.db.Collection(walletCollection).
		ReplaceOne(ctx, bson.M{"account_id": accountID}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to replace wallet snapshot: %w", err)
	}
	return nil
}

func (r *MongoSnapshotRepo) Accounts(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var accounts []string
	for _, collection := range []string{appointmentCollection, walletCollection} {
		values, err := r.db.Collection(collection).Distinct(ctx, "account_id", bson.M{})
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshot accounts: %w", err)
		}
		for _, v := range values {
			id, ok := v.(string)
			if ok && !seen[id] {
				seen[id] = true
				accounts = append(accounts, id)
			}
		}
	}
	return accounts, nil
}

func (r *MongoSnapshotRepo) Purge(ctx context.Context, accountID string) error {
	if _, err := r.db.Collection(appointmentCollection).
		DeleteOne(ctx, bson.M{"account_id": accountID}); err != nil {
		return fmt.Errorf("failed to purge appointment snapshot: %w", err)
	}
	if _, err := r.db.Collection(walletCollection).
		DeleteOne(ctx, bson.M{"account_id": accountID}); err != nil {
		return fmt.Errorf("failed to purge wallet snapshot: %w", err)
	}
	return nil
}
