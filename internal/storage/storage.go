// /internal/storage/storage.go
package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/keshon/cmdhandler/datastore"
)

const commandHistoryLimit int = 20

const historyKeyPrefix = "history:"

type Storage struct {
	ds *datastore.DataStore
}

// CommandHistoryRecord is one executed invocation.
type CommandHistoryRecord struct {
	Transport  string    `json:"transport"`
	GuildID    string    `json:"guild_id,omitempty"`
	ChannelID  string    `json:"channel_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Command    string    `json:"command"`
	Args       []string  `json:"args,omitempty"`
	Failed     bool      `json:"failed"`
	Invocation string    `json:"invocation,omitempty"`
	Datetime   time.Time `json:"datetime"`
}

type historyRecord struct {
	Commands []CommandHistoryRecord `json:"cmd_history"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &Storage{ds: ds}, nil
}

// NewWithDataStore wraps an already opened datastore.
func NewWithDataStore(ds *datastore.DataStore) *Storage {
	return &Storage{ds: ds}
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// HistoryKey groups records by transport and channel.
func HistoryKey(transport, channelID string) string {
	return historyKeyPrefix + transport + ":" + channelID
}

// AppendCommandToHistory appends a record, keeping only the newest commandHistoryLimit.
func (s *Storage) AppendCommandToHistory(rec CommandHistoryRecord) error {
	if rec.Datetime.IsZero() {
		rec.Datetime = time.Now()
	}
	return datastore.Update(s.ds, HistoryKey(rec.Transport, rec.ChannelID), func(h *historyRecord) {
		h.Commands = append(h.Commands, rec)
		if len(h.Commands) > commandHistoryLimit {
			h.Commands = h.Commands[len(h.Commands)-commandHistoryLimit:]
		}
	})
}

// FetchCommandHistory returns the records of one channel, oldest first.
func (s *Storage) FetchCommandHistory(transport, channelID string) ([]CommandHistoryRecord, error) {
	var h historyRecord
	if _, err := s.ds.Get(HistoryKey(transport, channelID), &h); err != nil {
		return nil, err
	}
	return h.Commands, nil
}

// FetchAllCommandHistory returns every stored record, newest first.
func (s *Storage) FetchAllCommandHistory() ([]CommandHistoryRecord, error) {
	var all []CommandHistoryRecord
	for _, key := range s.ds.Keys() {
		if !strings.HasPrefix(key, historyKeyPrefix) {
			continue
		}
		var h historyRecord
		if _, err := s.ds.Get(key, &h); err != nil {
			return nil, err
		}
		all = append(all, h.Commands...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Datetime.After(all[j].Datetime)
	})
	return all, nil
}
