package bridge

import (
	"context"
	"log/slog"
	"vizshell/persist"
	"vizshell/service"
)

// RegisterCommands wires every backend command into the dispatch table.
func RegisterCommands(reg *Registry, records service.SaveRecordStorage) error {
	return reg.Register("save_visualization", Typed(saveVisualization(records)))
}

// saveVisualization persists an exported visualization to the path the
// user picked in the save dialog, then records the save and notifies
// subscribed UI clients.
func saveVisualization(records service.SaveRecordStorage) func(ctx context.Context, req persist.SaveRequest) (persist.SaveResult, error) {
	return func(ctx context.Context, req persist.SaveRequest) (persist.SaveResult, error) {
		result, err := persist.Save(ctx, req)
		if err != nil {
			slog.Error("failed to save visualization", "path", req.Path, "err", err)
			service.PublishEvent(service.EventSaveFailed, service.SaveEventPayload{
				Path:  req.Path,
				Error: err.Error(),
			})
			return persist.SaveResult{}, err
		}
		rec := service.NewSaveRecord(result.Path, req.Data)
		if err := records.Add(ctx, rec); err != nil {
			slog.Error("failed to record save", "path", result.Path, "err", err)
		}
		service.PublishEvent(service.EventSaveCompleted, service.SaveEventPayload{
			Path:   rec.Path,
			Bytes:  rec.Bytes,
			Digest: rec.Digest,
			Format: rec.Format,
		})
		slog.Info("visualization saved", "path", rec.Path, "bytes", rec.Bytes, "format", rec.Format)
		return result, nil
	}
}
