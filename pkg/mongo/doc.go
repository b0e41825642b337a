// Package mongo connects to MongoDB with the v2 driver and provides a
// usage.Store backed by a single collection.
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := mongo.NewStore(client.Database(cfg.Database).Collection(cfg.Collection))
//
// Documents are keyed by the usage key (_id) and carry the encoded record
// as binary data.
package mongo
