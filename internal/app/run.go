package app

import (
	"context"
	"fmt"

	"github.com/vk/dispatchgo/internal/bind"
	"github.com/vk/dispatchgo/internal/ctxlog"
	"github.com/vk/dispatchgo/internal/object"
	"github.com/vk/dispatchgo/internal/transcript"
)

// Run executes the driver scenario: construct every declared object in
// order, dispatch every call in order, write the transcript, and release
// all handles in reverse creation order.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	scenario := a.model.Scenario
	if len(scenario.Objects) == 0 {
		a.logger.Warn("No objects declared in scenario, nothing to run.")
		return nil
	}

	handles := make(map[string]*object.Handle, len(scenario.Objects))
	var order []string
	defer func() {
		for i := len(order) - 1; i >= 0; i-- {
			handles[order[i]].Release()
			a.logger.Debug("Handle released.", "object", order[i])
		}
	}()

	a.logger.Info("🚀 Constructing scenario objects...", "count", len(scenario.Objects))
	for _, decl := range scenario.Objects {
		if _, exists := handles[decl.Name]; exists {
			return fmt.Errorf("scenario declares object %q twice", decl.Name)
		}
		h, err := object.New(a.set, decl.TypeTag, decl.State)
		if err != nil {
			return fmt.Errorf("failed to construct object %q: %w", decl.Name, err)
		}
		handles[decl.Name] = h
		order = append(order, decl.Name)
		a.logger.Info("▶️ Object constructed.", "object", decl.Name, "type", decl.TypeTag, "id", h.ID())
	}

	recorder := transcript.NewRecorder()
	for _, call := range scenario.Calls {
		h, ok := handles[call.Object]
		if !ok {
			return fmt.Errorf("call references unknown object %q", call.Object)
		}

		out, err := a.dispatcher.Invoke(ctx, h, call.Operation, call.Args)
		if err != nil {
			return fmt.Errorf("call %s.%s failed: %w", call.Object, call.Operation, err)
		}

		native, err := bind.ToNative(out)
		if err != nil {
			return fmt.Errorf("call %s.%s produced an unrenderable result: %w", call.Object, call.Operation, err)
		}

		recorder.Append(transcript.Record{
			Object:    call.Object,
			Type:      h.Tag(),
			Operation: call.Operation,
			Result:    native,
		})
		a.logger.Info("✅ Call dispatched.", "object", call.Object, "operation", call.Operation)
	}

	if err := a.writeTranscript(recorder); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	a.logger.Info("🏁 Scenario finished.", "calls", len(scenario.Calls))
	return nil
}

func (a *App) writeTranscript(recorder *transcript.Recorder) error {
	switch a.config.TranscriptFormat {
	case "json":
		return recorder.WriteJSON(a.outW)
	default:
		return recorder.WriteText(a.outW)
	}
}
