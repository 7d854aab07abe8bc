// stream.go
//
// HTTP handlers for the notes feed
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notesdb.
// notesdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notesdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notesdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Streamer serves server-sent event feeds. Base is cancelled on shutdown and
// ends every open stream.
type Streamer struct {
	Base      context.Context
	Heartbeat time.Duration
	Log       *zap.Logger
}

// context returns a context for one stream. It outlives the handler call
// and ends with the stream or on shutdown.
func (s *Streamer) context() (context.Context, context.CancelFunc) {
	base := s.Base
	if base == nil {
		base = context.Background()
	}
	return context.WithCancel(base)
}

// stream writes every value from ch as a "snapshot" event until ch closes,
// the client goes away or ctx is done.
func stream[T any](s *Streamer, c *fiber.Ctx, ctx context.Context, cancel context.CancelFunc, ch <-chan T, render func(T) interface{}) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	heartbeat := s.Heartbeat
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	log := s.Log
	path := c.Path()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		for {
			select {
			case v, ok := <-ch:
				if !ok {
					return
				}
				data, err := json.Marshal(render(v))
				if err != nil {
					log.Error("failed to encode snapshot", zap.String("path", path), zap.Error(err))
					return
				}
				fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
			case <-ticker.C:
				w.WriteString(": ping\n\n")
			case <-ctx.Done():
				return
			}
			if err := w.Flush(); err != nil {
				log.Debug("stream client gone", zap.String("path", path))
				return
			}
		}
	}))
	return nil
}
