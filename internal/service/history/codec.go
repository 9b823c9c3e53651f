package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/sandevgo/tuskchat/pkg/log"
)

func Encode(msg core.Message) (string, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to encode message: %w", err)
	}
	return string(data), nil
}

// Decode parses one stored entry. Anything that is not a JSON object with a
// known role is reported as core.ErrDeserialization.
func Decode(entry string) (core.Message, error) {
	var msg core.Message
	if err := json.Unmarshal([]byte(entry), &msg); err != nil {
		return core.Message{}, fmt.Errorf("%w: %w", core.ErrDeserialization, err)
	}
	if !msg.Valid() {
		return core.Message{}, fmt.Errorf("%w: unknown role %q", core.ErrDeserialization, msg.Role)
	}
	return msg, nil
}

// DecodeAll maps entries to messages position by position, substituting the
// placeholder for entries that fail to decode.
func DecodeAll(ctx context.Context, entries []string) []core.Message {
	logger := log.FromCtx(ctx)

	messages := make([]core.Message, len(entries))
	for i, entry := range entries {
		msg, err := Decode(entry)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("failed to parse message")
			msg = core.PlaceholderMessage()
		}
		messages[i] = msg
	}
	return messages
}
