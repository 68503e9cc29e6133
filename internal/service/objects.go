package service

import (
	"context"
	"log/slog"

	"blogapi/internal/models"
	"blogapi/internal/storage"
)

func objectNames(images []models.Image) []string {
	names := make([]string, 0, len(images))
	for _, image := range images {
		names = append(names, image.ObjectName)
	}
	return names
}

// removeObjects deletes stored files whose rows are already gone. Failures
// only leave orphans in the bucket, so they are logged and skipped.
func removeObjects(ctx context.Context, st storage.Storage, log *slog.Logger, objectNames []string) {
	if st == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	for _, name := range objectNames {
		if err := st.DeleteImage(ctx, name); err != nil {
			log.Warn("failed to remove stored image", "object", name, "error", err)
		}
	}
}
