package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"stuntcare/internal/models"
	"stuntcare/internal/observability"
	"stuntcare/internal/repository"
	"stuntcare/internal/storage"
)

// CleanupFailure records one best-effort blob deletion that failed.
type CleanupFailure struct {
	Name string `json:"name"`
	Err  string `json:"error"`
}

// CleanupOutcome reports the blob cleanup phase of a cascade, per item.
type CleanupOutcome struct {
	Deleted []string         `json:"deleted"`
	Failed  []CleanupFailure `json:"failed"`
}

// DeletedSummary reports what a cascade removed.
type DeletedSummary struct {
	Documents map[storage.Kind]int `json:"documents"`
	Blobs     CleanupOutcome       `json:"blobs"`

	// pending holds image URLs whose documents are already deleted but whose
	// blobs have not been cleaned up yet.
	pending []string
}

func (s *DeletedSummary) total() int {
	n := 0
	for _, c := range s.Documents {
		n += c
	}
	return n
}

// CascadeCoordinator removes a root entity together with every entity that
// references it, bottom-up: growth history and daily food before their child,
// children before their parent, the root document last. Sibling dependent
// sets are deleted concurrently; any document deletion failure aborts the
// cascade. Blob cleanup runs after the documents are gone and is best-effort.
type CascadeCoordinator struct {
	parents repository.ParentRepository
	childs  repository.ChildRepository
	growth  repository.GrowthHistoryRepository
	food    repository.DailyFoodRepository
	media   *MediaWorkflow
}

// NewCascadeCoordinator creates a CascadeCoordinator.
func NewCascadeCoordinator(
	parents repository.ParentRepository,
	childs repository.ChildRepository,
	growth repository.GrowthHistoryRepository,
	food repository.DailyFoodRepository,
	media *MediaWorkflow,
) *CascadeCoordinator {
	return &CascadeCoordinator{
		parents: parents,
		childs:  childs,
		growth:  growth,
		food:    food,
		media:   media,
	}
}

// DeleteParent cascades over every child of the parent, then removes the
// parent document, and finally cleans up the orphaned blobs.
func (c *CascadeCoordinator) DeleteParent(ctx context.Context, parentID string) (*DeletedSummary, error) {
	parent, err := c.parents.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	children, err := c.childs.ListByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}

	summary := newSummary()

	// Children cascade concurrently; each task finishes its own dependents
	// before removing the child document, so the bottom-up order holds
	// within every branch.
	g, gctx := errgroup.WithContext(ctx)
	results := make([]*DeletedSummary, len(children))
	for i := range children {
		child := children[i]
		i := i
		g.Go(func() error {
			branch, err := c.deleteChildBranch(gctx, &child)
			if err != nil {
				return err
			}
			results[i] = branch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, branch := range results {
		summary.merge(branch)
	}

	// Every dependent document is gone; the root goes last.
	if err := c.parents.Delete(ctx, parentID); err != nil {
		return nil, err
	}
	summary.Documents[storage.KindParent]++

	c.cleanup(ctx, summary, parent.ImageURL)

	observability.CascadeDocumentsDeleted.WithLabelValues(string(storage.KindParent)).Add(float64(summary.total()))
	observability.LogCascadeSummary(ctx, string(storage.KindParent), parentID,
		summary.total(), len(summary.Blobs.Deleted), len(summary.Blobs.Failed))
	return summary, nil
}

// DeleteChild cascades over the child's growth history and daily food
// records, removes the child document, then cleans up blobs.
func (c *CascadeCoordinator) DeleteChild(ctx context.Context, childID string) (*DeletedSummary, error) {
	child, err := c.childs.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}

	summary, err := c.deleteChildBranch(ctx, child)
	if err != nil {
		return nil, err
	}

	c.cleanup(ctx, summary)

	observability.CascadeDocumentsDeleted.WithLabelValues(string(storage.KindChild)).Add(float64(summary.total()))
	observability.LogCascadeSummary(ctx, string(storage.KindChild), childID,
		summary.total(), len(summary.Blobs.Deleted), len(summary.Blobs.Failed))
	return summary, nil
}

// deleteChildBranch removes one child and everything under it. Blob names are
// collected into the summary's pending list but not deleted here; the caller
// runs cleanup once its whole document phase has succeeded.
func (c *CascadeCoordinator) deleteChildBranch(ctx context.Context, child *models.Child) (*DeletedSummary, error) {
	summary := newSummary()

	// Growth history and daily food have no required relative order.
	g, gctx := errgroup.WithContext(ctx)

	var growthCount int
	g.Go(func() error {
		records, err := c.growth.ListByChild(gctx, child.ID)
		if err != nil {
			return err
		}
		ids := make([]string, len(records))
		for i, rec := range records {
			ids[i] = rec.ID
		}
		if err := c.growth.BatchDelete(gctx, ids); err != nil {
			return err
		}
		growthCount = len(ids)
		return nil
	})

	var foodCount int
	var foodImages []string
	g.Go(func() error {
		entries, err := c.food.ListByChild(gctx, child.ID)
		if err != nil {
			return err
		}
		ids := make([]string, len(entries))
		for i, entry := range entries {
			ids[i] = entry.ID
			if entry.ImageURL != "" {
				foodImages = append(foodImages, entry.ImageURL)
			}
		}
		if err := c.food.BatchDelete(gctx, ids); err != nil {
			return err
		}
		foodCount = len(ids)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := c.childs.Delete(ctx, child.ID); err != nil {
		return nil, err
	}

	summary.Documents[storage.KindGrowthHistory] += growthCount
	summary.Documents[storage.KindDailyFood] += foodCount
	summary.Documents[storage.KindChild]++
	summary.pending = append(summary.pending, foodImages...)
	if child.ImageURL != "" {
		summary.pending = append(summary.pending, child.ImageURL)
	}
	return summary, nil
}

// cleanup deletes the collected blobs (plus any extra URLs) best-effort,
// recording the per-item outcome. The sentinel default image is filtered out
// inside the media workflow.
func (c *CascadeCoordinator) cleanup(ctx context.Context, summary *DeletedSummary, extra ...string) {
	urls := append(summary.pending, extra...)
	summary.pending = nil
	for _, imageURL := range urls {
		name, ok := c.media.ownedBlobName(imageURL)
		if !ok {
			continue
		}
		if err := c.media.blobs.Delete(ctx, name); err != nil {
			observability.BlobCleanupFailures.Inc()
			observability.LogCleanupFailure(ctx, name, err)
			summary.Blobs.Failed = append(summary.Blobs.Failed, CleanupFailure{Name: name, Err: err.Error()})
			continue
		}
		summary.Blobs.Deleted = append(summary.Blobs.Deleted, name)
	}
}

func newSummary() *DeletedSummary {
	return &DeletedSummary{Documents: make(map[storage.Kind]int)}
}

func (s *DeletedSummary) merge(other *DeletedSummary) {
	for kind, count := range other.Documents {
		s.Documents[kind] += count
	}
	s.pending = append(s.pending, other.pending...)
}
