package directory

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/uzhavar-connect/db"
	"github.com/SaiNageswarS/uzhavar-connect/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

var byFilePosition = bson.D{{Key: "_id", Value: 1}}

// MongoSource reads the directory from the collections written by Seed.
type MongoSource struct {
	client   odm.MongoClient
	database string
}

func NewMongoSource(client odm.MongoClient, database string) *MongoSource {
	return &MongoSource{client: client, database: database}
}

func (s *MongoSource) String() string {
	return "mongo:" + s.database
}

func (s *MongoSource) States(ctx context.Context) ([]model.State, error) {
	docs, err := async.Await(odm.CollectionOf[db.StateModel](s.client, s.database).Find(ctx, nil, byFilePosition, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", db.StatesCollection, err)
	}
	out := make([]model.State, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.State{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

func (s *MongoSource) Districts(ctx context.Context) ([]model.District, error) {
	return s.findDistricts(ctx, nil)
}

func (s *MongoSource) DistrictsOf(ctx context.Context, stateID string) ([]model.District, error) {
	return s.findDistricts(ctx, bson.M{"state_id": stateID})
}

func (s *MongoSource) findDistricts(ctx context.Context, filter bson.M) ([]model.District, error) {
	docs, err := async.Await(odm.CollectionOf[db.DistrictModel](s.client, s.database).Find(ctx, filter, byFilePosition, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", db.DistrictsCollection, err)
	}
	out := make([]model.District, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.District{ID: d.ID, Name: d.Name, StateID: d.StateID})
	}
	return out, nil
}

func (s *MongoSource) Sectors(ctx context.Context) ([]model.Sector, error) {
	docs, err := async.Await(odm.CollectionOf[db.SectorModel](s.client, s.database).Find(ctx, nil, byFilePosition, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", db.SectorsCollection, err)
	}
	out := make([]model.Sector, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.Sector{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

func (s *MongoSource) NGOs(ctx context.Context) ([]model.NGORecord, error) {
	docs, err := async.Await(odm.CollectionOf[db.NGOModel](s.client, s.database).Find(ctx, nil, byFilePosition, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", db.NGOsCollection, err)
	}
	out := make([]model.NGORecord, 0, len(docs))
	for _, d := range docs {
		rec, err := ParseNGO([]string{d.Record, d.DistrictID, d.StateID})
		if err != nil {
			return nil, fmt.Errorf("ngo document %s: %w", d.Key, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Seed replaces the four collections with the content of from, keeping source order.
func Seed(ctx context.Context, client odm.MongoClient, database string, from Source) (model.DataVersion, error) {
	snap, err := LoadSnapshot(ctx, from)
	if err != nil {
		return model.DataVersion{}, err
	}

	states := make([]any, 0, len(snap.states))
	for i, st := range snap.states {
		states = append(states, db.StateModel{Key: db.SeqKey(i), ID: st.ID, Name: st.Name})
	}
	districts := make([]any, 0, len(snap.districts))
	for i, d := range snap.districts {
		districts = append(districts, db.DistrictModel{Key: db.SeqKey(i), ID: d.ID, Name: d.Name, StateID: d.StateID})
	}
	sectors := make([]any, 0, len(snap.sectors))
	for i, sc := range snap.sectors {
		sectors = append(sectors, db.SectorModel{Key: db.SeqKey(i), ID: sc.ID, Name: sc.Name})
	}
	ngos := make([]any, 0, len(snap.ngos))
	for i, n := range snap.ngos {
		ngos = append(ngos, db.NGOModel{
			Key:        db.SeqKey(i),
			StateID:    n.StateID,
			DistrictID: n.DistrictID,
			Name:       n.Name,
			KeyIssues:  n.KeyIssues,
			Record:     string(n.Raw),
		})
	}

	for _, c := range []struct {
		name string
		docs []any
	}{
		{db.StatesCollection, states},
		{db.DistrictsCollection, districts},
		{db.SectorsCollection, sectors},
		{db.NGOsCollection, ngos},
	} {
		if err := replaceCollection(ctx, client, database, c.name, c.docs); err != nil {
			return model.DataVersion{}, err
		}
		logger.Info("Seeded collection", zap.String("collection", c.name), zap.Int("documents", len(c.docs)))
	}

	return snap.version("mongo:"+database, ""), nil
}

// odm collections only save one document at a time, so the bulk replace goes
// through the driver collection.
func replaceCollection(ctx context.Context, client odm.MongoClient, database, name string, docs []any) error {
	coll := client.Database(database).Collection(name)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear %s: %w", name, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", name, err)
	}
	return nil
}
