// metrics.go
//
// Domain metrics for the notes service
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

// Package metrics declares the domain counters exported on /metrics
// next to the HTTP metrics from fiberprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Downloads counts recorded download or play actions by outcome
	Downloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notesdb",
		Name:      "downloads_total",
		Help:      "Download counter increments by outcome.",
	}, []string{"outcome"})

	// Moderation counts admin actions
	Moderation = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notesdb",
		Name:      "moderation_actions_total",
		Help:      "Moderation actions by kind.",
	}, []string{"action"})

	// Comments counts comment submissions by outcome
	Comments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notesdb",
		Name:      "comments_total",
		Help:      "Comment submissions by outcome.",
	}, []string{"outcome"})

	// StoreErrors counts failed store operations
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "notesdb",
		Name:      "store_errors_total",
		Help:      "Failed store operations by operation name.",
	}, []string{"op"})

	// LiveFeeds is the number of open snapshot streams
	LiveFeeds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "notesdb",
		Name:      "live_feeds",
		Help:      "Open server-sent snapshot streams.",
	})
)
