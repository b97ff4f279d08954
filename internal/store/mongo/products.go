package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

const duplicateKeyCode = 11000

type productDoc struct {
	ID                primitive.ObjectID `bson:"_id"`
	ProductName       string             `bson:"product_name"`
	HSNCode           *string            `bson:"hsn_code"`
	SKU               *string            `bson:"sku"`
	Tax               *float64           `bson:"tax"`
	Barcode           string             `bson:"barcode"`
	WarehouseLocation *string            `bson:"warehouse_location"`
	Image             *string            `bson:"image"`
}

func newProductDoc(p core.Product) productDoc {
	return productDoc{
		ID:                primitive.NewObjectID(),
		ProductName:       p.ProductName,
		HSNCode:           p.HSNCode,
		SKU:               p.SKU,
		Tax:               p.Tax,
		Barcode:           p.Barcode,
		WarehouseLocation: p.WarehouseLocation,
		Image:             p.Image,
	}
}

func (d productDoc) product() core.Product {
	return core.Product{
		ID:                d.ID.Hex(),
		ProductName:       d.ProductName,
		HSNCode:           d.HSNCode,
		SKU:               d.SKU,
		Tax:               d.Tax,
		Barcode:           d.Barcode,
		WarehouseLocation: d.WarehouseLocation,
		Image:             d.Image,
	}
}

// CreateProduct implements core.ProductStore.
func (s *Store) CreateProduct(ctx context.Context, p core.Product) (core.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc := newProductDoc(p)
	if _, err := s.products.InsertOne(ctx, doc); err != nil {
		return core.Product{}, classify("create product", err, "Product", "", p.Barcode)
	}
	return doc.product(), nil
}

// CreateProducts implements core.ProductStore.
func (s *Store) CreateProducts(ctx context.Context, products []core.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = newProductDoc(p)
	}

	_, err := s.products.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return len(products), nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil {
		return 0, classify("bulk insert products", err, "Product", "", "")
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != duplicateKeyCode {
			return 0, classify("bulk insert products", err, "Product", "", "")
		}
	}
	return len(products) - len(bwe.WriteErrors), nil
}

// ListProducts implements core.ProductStore.
func (s *Store) ListProducts(ctx context.Context) ([]core.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cur, err := s.products.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, classify("list products", err, "Product", "", "")
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify("list products", err, "Product", "", "")
	}

	products := make([]core.Product, len(docs))
	for i, d := range docs {
		products[i] = d.product()
	}
	return products, nil
}

func productSet(u core.ProductUpdate) bson.M {
	set := bson.M{}
	if u.ProductName.Set {
		set["product_name"] = u.ProductName.Value
	}
	if u.HSNCode.Set {
		set["hsn_code"] = u.HSNCode.Value
	}
	if u.SKU.Set {
		set["sku"] = u.SKU.Value
	}
	if u.Tax.Set {
		set["tax"] = u.Tax.Value
	}
	if u.Barcode.Set {
		set["barcode"] = u.Barcode.Value
	}
	if u.WarehouseLocation.Set {
		set["warehouse_location"] = u.WarehouseLocation.Value
	}
	if u.Image.Set {
		set["image"] = u.Image.Value
	}
	return set
}

// UpdateProduct implements core.ProductStore.
func (s *Store) UpdateProduct(ctx context.Context, id string, u core.ProductUpdate) (core.Product, error) {
	oid, err := objectID("Product", id)
	if err != nil {
		return core.Product{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		doc    productDoc
		filter = bson.M{"_id": oid}
		set    = productSet(u)
	)
	if len(set) == 0 {
		err = s.products.FindOne(ctx, filter).Decode(&doc)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = s.products.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	}
	if err != nil {
		return core.Product{}, classify("update product", err, "Product", id, u.Barcode.Value)
	}
	return doc.product(), nil
}

// DeleteProduct implements core.ProductStore.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	oid, err := objectID("Product", id)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.products.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return classify("delete product", err, "Product", id, "")
	}
	if res.DeletedCount == 0 {
		return &core.NotFoundError{Entity: "Product", ID: id}
	}
	return nil
}
