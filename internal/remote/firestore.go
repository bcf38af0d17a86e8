package remote

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sourceclub/door-monitor/internal/state"
)

// StatusDocID is the fixed document id for the current-status document.
// Day aggregates live in the same collection under their yyyy-mm-dd date.
const StatusDocID = "current_status"

// callTimeout bounds each remote call so a dead network cannot wedge the
// goroutine issuing the sync.
const callTimeout = 10 * time.Second

// FirestoreStore talks to the Firestore collection the door statistics
// web page reads from. Document shapes match the existing deployment.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore connects to Firestore. credentialsFile may be empty,
// in which case application default credentials are used.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile, collection string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	return &FirestoreStore{client: client, collection: collection}, nil
}

// UpsertStatus overwrites the current-status document.
// isOpen is stored as 0/1 for compatibility with the web page.
func (s *FirestoreStore) UpsertStatus(ctx context.Context, st state.CurrentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	isOpen := 0
	if st.IsOpen {
		isOpen = 1
	}

	_, err := s.client.Collection(s.collection).Doc(StatusDocID).Set(ctx, map[string]interface{}{
		"isOpen":     isOpen,
		"lastOpened": st.LastOpened,
		"lastClosed": st.LastClosed,
	})
	if err != nil {
		return fmt.Errorf("upsert status: %w", err)
	}
	return nil
}

// UpsertDay overwrites the aggregate document for agg.Date.
func (s *FirestoreStore) UpsertDay(ctx context.Context, agg state.DayAggregate) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	openings := make([]map[string]interface{}, len(agg.Openings))
	for i, o := range agg.Openings {
		openings[i] = map[string]interface{}{
			"opened": o.Opened,
			"closed": o.Closed,
		}
	}

	_, err := s.client.Collection(s.collection).Doc(agg.Date).Set(ctx, map[string]interface{}{
		"num_of_openings": agg.NumOpenings,
		"openings":        openings,
	})
	if err != nil {
		return fmt.Errorf("upsert day %s: %w", agg.Date, err)
	}
	return nil
}

// DayExists reports whether a document for the given date exists.
func (s *FirestoreStore) DayExists(ctx context.Context, date string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	snap, err := s.client.Collection(s.collection).Doc(date).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get day %s: %w", date, err)
	}
	return snap.Exists(), nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
