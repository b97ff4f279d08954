package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

type vendorDoc struct {
	ID              primitive.ObjectID `bson:"_id"`
	CompanyName     string             `bson:"company_name"`
	GSTNumber       *string            `bson:"gst_number"`
	BillingAddress  *string            `bson:"billing_address"`
	ShippingAddress *string            `bson:"shipping_address"`
	ContactNumber   string             `bson:"contact_number"`
	Email           string             `bson:"email"`
	Salutation      *string            `bson:"salutation"`
	FirstName       string             `bson:"first_name"`
	LastName        string             `bson:"last_name"`
	State           *string            `bson:"state"`
	Code            *string            `bson:"code"`
	PaymentTerms    *string            `bson:"payment_terms"`
}

func (d vendorDoc) vendor() core.Vendor {
	return core.Vendor{
		ID:              d.ID.Hex(),
		CompanyName:     d.CompanyName,
		GSTNumber:       d.GSTNumber,
		BillingAddress:  d.BillingAddress,
		ShippingAddress: d.ShippingAddress,
		ContactNumber:   d.ContactNumber,
		Email:           d.Email,
		Salutation:      d.Salutation,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		State:           d.State,
		Code:            d.Code,
		PaymentTerms:    d.PaymentTerms,
	}
}

// CreateVendor implements core.VendorStore.
func (s *Store) CreateVendor(ctx context.Context, v core.Vendor) (core.Vendor, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc := vendorDoc{
		ID:              primitive.NewObjectID(),
		CompanyName:     v.CompanyName,
		GSTNumber:       v.GSTNumber,
		BillingAddress:  v.BillingAddress,
		ShippingAddress: v.ShippingAddress,
		ContactNumber:   v.ContactNumber,
		Email:           v.Email,
		Salutation:      v.Salutation,
		FirstName:       v.FirstName,
		LastName:        v.LastName,
		State:           v.State,
		Code:            v.Code,
		PaymentTerms:    v.PaymentTerms,
	}
	if _, err := s.vendors.InsertOne(ctx, doc); err != nil {
		return core.Vendor{}, classify("create vendor", err, "Vendor", "", "")
	}
	return doc.vendor(), nil
}

// ListVendors implements core.VendorStore.
func (s *Store) ListVendors(ctx context.Context) ([]core.Vendor, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cur, err := s.vendors.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, classify("list vendors", err, "Vendor", "", "")
	}
	defer cur.Close(ctx)

	var docs []vendorDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify("list vendors", err, "Vendor", "", "")
	}

	vendors := make([]core.Vendor, len(docs))
	for i, d := range docs {
		vendors[i] = d.vendor()
	}
	return vendors, nil
}

func vendorSet(u core.VendorUpdate) bson.M {
	set := bson.M{}
	str := func(key string, c core.Change[string]) {
		if c.Set {
			set[key] = c.Value
		}
	}
	opt := func(key string, c core.Change[*string]) {
		if c.Set {
			set[key] = c.Value
		}
	}

	str("company_name", u.CompanyName)
	opt("gst_number", u.GSTNumber)
	opt("billing_address", u.BillingAddress)
	opt("shipping_address", u.ShippingAddress)
	str("contact_number", u.ContactNumber)
	str("email", u.Email)
	opt("salutation", u.Salutation)
	str("first_name", u.FirstName)
	str("last_name", u.LastName)
	opt("state", u.State)
	opt("code", u.Code)
	opt("payment_terms", u.PaymentTerms)
	return set
}

// UpdateVendor implements core.VendorStore.
func (s *Store) UpdateVendor(ctx context.Context, id string, u core.VendorUpdate) (core.Vendor, error) {
	oid, err := objectID("Vendor", id)
	if err != nil {
		return core.Vendor{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		doc    vendorDoc
		filter = bson.M{"_id": oid}
		set    = vendorSet(u)
	)
	if len(set) == 0 {
		err = s.vendors.FindOne(ctx, filter).Decode(&doc)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = s.vendors.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	}
	if err != nil {
		return core.Vendor{}, classify("update vendor", err, "Vendor", id, "")
	}
	return doc.vendor(), nil
}

// DeleteVendor implements core.VendorStore.
func (s *Store) DeleteVendor(ctx context.Context, id string) error {
	oid, err := objectID("Vendor", id)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.vendors.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return classify("delete vendor", err, "Vendor", id, "")
	}
	if res.DeletedCount == 0 {
		return &core.NotFoundError{Entity: "Vendor", ID: id}
	}
	return nil
}
