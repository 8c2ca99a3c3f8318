package firestore

import (
	"context"
	"log/slog"
	"sync"

	"cloud.google.com/go/firestore"
)

// collectionSubscription adapts a Firestore query snapshot listener into a
// repository.Subscription. Each listener callback decodes the whole result
// set and pushes it as one value; consumers replace their previous snapshot
// entirely.
type collectionSubscription[T any] struct {
	updates  chan []T
	cancel   context.CancelFunc
	stopOnce sync.Once
	done     chan struct{}
}

// watchQuery opens a snapshot listener on the query and streams decoded
// result sets until Stop is called or the listener fails. decode maps one
// document to an entity; documents that fail to decode are skipped with a
// warning rather than poisoning the whole feed.
func watchQuery[T any](
	ctx context.Context,
	query firestore.Query,
	logger *slog.Logger,
	decode func(doc *firestore.DocumentSnapshot) (T, error),
) *collectionSubscription[T] {
	watchCtx, cancel := context.WithCancel(ctx)
	sub := &collectionSubscription[T]{
		updates: make(chan []T, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	iter := query.Snapshots(watchCtx)

	go func() {
		defer close(sub.done)
		defer close(sub.updates)
		defer iter.Stop()

		for {
			snap, err := iter.Next()
			if err != nil {
				if watchCtx.Err() == nil {
					logger.Error("Snapshot listener failed", slog.Any("error", err))
				}

				return
			}

			entities := make([]T, 0, snap.Size)
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err != nil {
					break
				}

				entity, decodeErr := decode(doc)
				if decodeErr != nil {
					logger.Warn("Skipping undecodable document",
						slog.String("doc_id", doc.Ref.ID),
						slog.Any("error", decodeErr),
					)

					continue
				}
				entities = append(entities, entity)
			}

			select {
			case sub.updates <- entities:
			case <-watchCtx.Done():
				return
			}
		}
	}()

	return sub
}

// Updates returns the snapshot channel. Closed after Stop or listener failure.
func (s *collectionSubscription[T]) Updates() <-chan []T {
	return s.updates
}

// Stop cancels the listener and waits for the feed goroutine to exit.
// Safe to call more than once.
func (s *collectionSubscription[T]) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.done
	})
}
