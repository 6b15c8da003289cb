// Package legacy reads the catalog of the previous Firestore-backed store.
package legacy

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Category struct {
	ID   string `firestore:"-"`
	Name string `firestore:"name"`
	Type string `firestore:"type"`
}

// Product mirrors a legacy product document. Categories holds either category
// document ids or category names, depending on which editor wrote it.
type Product struct {
	ID            string   `firestore:"-"`
	Name          string   `firestore:"name"`
	Description   string   `firestore:"description"`
	ImageURL      string   `firestore:"image"`
	CategoryType  string   `firestore:"categoryType"`
	Categories    []string `firestore:"categories"`
	IsNew         bool     `firestore:"isNew"`
	Featured      bool     `firestore:"featured"`
	Price         *float64 `firestore:"price"`
	DiscountPrice *float64 `firestore:"discountPrice"`
	Stock         int      `firestore:"stock"`
	Weight        string   `firestore:"weight"`
	Dimensions    string   `firestore:"dimensions"`
}

type Source interface {
	Categories(ctx context.Context) ([]Category, error)
	Products(ctx context.Context) ([]Product, error)
}

type FirestoreSource struct {
	Client *firestore.Client
}

func NewFirestoreSource(ctx context.Context, projectID, credentialsFile string) (*FirestoreSource, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreSource{Client: client}, nil
}

func (s *FirestoreSource) Close() error { return s.Client.Close() }

func (s *FirestoreSource) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := s.each(ctx, "categories", func(doc *firestore.DocumentSnapshot) error {
		var c Category
		if err := doc.DataTo(&c); err != nil {
			return err
		}
		c.ID = doc.Ref.ID
		out = append(out, c)
		return nil
	})
	return out, err
}

func (s *FirestoreSource) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	err := s.each(ctx, "products", func(doc *firestore.DocumentSnapshot) error {
		var p Product
		if err := doc.DataTo(&p); err != nil {
			return err
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
		return nil
	})
	return out, err
}

func (s *FirestoreSource) each(ctx context.Context, collection string, fn func(*firestore.DocumentSnapshot) error) error {
	it := s.Client.Collection(collection).Documents(ctx)
	defer it.Stop()

	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			switch status.Code(err) {
			case codes.PermissionDenied, codes.Unauthenticated:
				return fmt.Errorf("read %s: credentials rejected: %w", collection, err)
			case codes.NotFound:
				return fmt.Errorf("read %s: project or database not found: %w", collection, err)
			}
			return fmt.Errorf("read %s: %w", collection, err)
		}
		if err := fn(doc); err != nil {
			return fmt.Errorf("decode %s/%s: %w", collection, doc.Ref.ID, err)
		}
	}
}
