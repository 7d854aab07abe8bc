// firestore_store.go
//
// Remote document store for the notes feed
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

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/localnerve/notesdb/internal/models"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	notesCollection       = "notes"
	commentsCollection    = "comments"
	usersCollection       = "users"
	departmentsCollection = "departments"
)

// FirestoreStore implements Store over Cloud Firestore. Subscriptions use
// Firestore snapshot listeners, so writes from any client are observed.
type FirestoreStore struct {
	client *firestore.Client
	log    *zap.Logger
}

// NewFirestoreStore connects to projectID. An empty credentialsFile uses
// application default credentials or FIRESTORE_EMULATOR_HOST.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string, log *zap.Logger) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	log.Info("connected to firestore", zap.String("project", projectID))
	return &FirestoreStore{client: client, log: log}, nil
}

func fsError(err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (s *FirestoreStore) notesQuery(f NoteFilter) firestore.Query {
	q := s.client.Collection(notesCollection).Query
	if f.DepartmentID != "" {
		q = q.Where("departmentId", "==", f.DepartmentID)
	}
	if f.Semester > 0 {
		q = q.Where("semester", "==", f.Semester)
	}
	if f.Status != "" {
		q = q.Where("status", "==", string(f.Status))
	}
	if f.UserID != "" {
		q = q.Where("userId", "==", f.UserID)
	}
	return q
}

func decodeNotes(docs []*firestore.DocumentSnapshot) ([]models.Note, error) {
	out := make([]models.Note, 0, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var n models.Note
		if err := doc.DataTo(&n); err != nil {
			return nil, fmt.Errorf("decode note %s: %w", doc.Ref.ID, err)
		}
		n.ID = doc.Ref.ID
		out = append(out, n)
	}
	// ordered in memory so scope queries need no composite index
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func decodeComments(docs []*firestore.DocumentSnapshot) ([]models.Comment, error) {
	out := make([]models.Comment, 0, len(docs))
	for _, doc := range docs {
		var c models.Comment
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("decode comment %s: %w", doc.Ref.ID, err)
		}
		c.ID = doc.Ref.ID
		out = append(out, c)
	}
	return out, nil
}

func (s *FirestoreStore) QueryNotes(ctx context.Context, f NoteFilter) ([]models.Note, error) {
	if f.IDs != nil {
		return s.notesByID(ctx, f)
	}
	docs, err := s.notesQuery(f).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return decodeNotes(docs)
}

// notesByID reads the id set directly and applies the remaining filters in memory
func (s *FirestoreStore) notesByID(ctx context.Context, f NoteFilter) ([]models.Note, error) {
	if len(f.IDs) == 0 {
		return []models.Note{}, nil
	}
	refs := make([]*firestore.DocumentRef, 0, len(f.IDs))
	for _, id := range f.IDs {
		refs = append(refs, s.client.Collection(notesCollection).Doc(id))
	}
	docs, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}
	all, err := decodeNotes(docs)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, n := range all {
		if (f.DepartmentID == "" || n.DepartmentID == f.DepartmentID) &&
			(f.Semester == 0 || n.Semester == f.Semester) &&
			(f.Status == "" || n.Status == f.Status) &&
			(f.UserID == "" || n.OwnedBy(f.UserID)) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *FirestoreStore) SubscribeNotes(ctx context.Context, f NoteFilter) (<-chan []models.Note, error) {
	if f.IDs != nil {
		return nil, errors.New("id set subscriptions are not supported")
	}
	return listen(ctx, s.log, s.notesQuery(f), decodeNotes)
}

func (s *FirestoreStore) GetNote(ctx context.Context, id string) (models.Note, error) {
	var n models.Note
	doc, err := s.client.Collection(notesCollection).Doc(id).Get(ctx)
	if err != nil {
		return n, fsError(err)
	}
	if err := doc.DataTo(&n); err != nil {
		return n, err
	}
	n.ID = doc.Ref.ID
	return n, nil
}

func (s *FirestoreStore) CreateNote(ctx context.Context, note *models.Note) error {
	ref := s.client.Collection(notesCollection).NewDoc()
	if note.ID != "" {
		ref = s.client.Collection(notesCollection).Doc(note.ID)
	}
	if note.Tags == nil {
		note.Tags = models.StringSet{}
	}
	wr, err := ref.Create(ctx, note)
	if err != nil {
		return err
	}
	note.ID = ref.ID
	// serverTimestamp resolves to the commit time of the write
	if note.CreatedAt.IsZero() {
		note.CreatedAt = wr.UpdateTime
	}
	return nil
}

func (s *FirestoreStore) ApproveNote(ctx context.Context, id string) error {
	ref := s.client.Collection(notesCollection).Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		if current, _ := doc.DataAt("status"); current == string(models.StatusApproved) {
			return nil
		}
		return tx.Update(ref, []firestore.Update{{Path: "status", Value: string(models.StatusApproved)}})
	})
	return fsError(err)
}

func (s *FirestoreStore) IncrementDownloads(ctx context.Context, id string) error {
	_, err := s.client.Collection(notesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "downloads", Value: firestore.Increment(1)},
	})
	return fsError(err)
}

func (s *FirestoreStore) DeleteNote(ctx context.Context, id string) error {
	ref := s.client.Collection(notesCollection).Doc(id)
	comments := s.client.Collection(commentsCollection).Where("noteId", "==", id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		docs, err := tx.Documents(comments).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err := tx.Delete(doc.Ref); err != nil {
				return err
			}
		}
		return tx.Delete(ref)
	})
	return fsError(err)
}

func (s *FirestoreStore) AddComment(ctx context.Context, c *models.Comment) error {
	noteRef := s.client.Collection(notesCollection).Doc(c.NoteID)
	commentRef := s.client.Collection(commentsCollection).NewDoc()
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(noteRef)
		if err != nil {
			return err
		}
		var n models.Note
		if err := doc.DataTo(&n); err != nil {
			return err
		}
		if err := tx.Create(commentRef, c); err != nil {
			return err
		}
		return tx.Update(noteRef, []firestore.Update{
			{Path: "commentCount", Value: firestore.Increment(1)},
			{Path: "rating", Value: runningAverage(n.Rating, n.CommentCount, c.Rating)},
		})
	})
	if err != nil {
		return fsError(err)
	}
	c.ID = commentRef.ID
	if c.CreatedAt.IsZero() {
		doc, err := commentRef.Get(ctx)
		if err != nil {
			return fsError(err)
		}
		if err := doc.DataTo(c); err != nil {
			return err
		}
		c.ID = commentRef.ID
	}
	return nil
}

func (s *FirestoreStore) commentsQuery(noteID string) firestore.Query {
	return s.client.Collection(commentsCollection).
		Where("noteId", "==", noteID).
		OrderBy("createdAt", firestore.Desc)
}

func (s *FirestoreStore) ListComments(ctx context.Context, noteID string) ([]models.Comment, error) {
	docs, err := s.commentsQuery(noteID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return decodeComments(docs)
}

func (s *FirestoreStore) SubscribeComments(ctx context.Context, noteID string) (<-chan []models.Comment, error) {
	return listen(ctx, s.log, s.commentsQuery(noteID), decodeComments)
}

func (s *FirestoreStore) GetProfile(ctx context.Context, uid string) (models.UserProfile, error) {
	var p models.UserProfile
	doc, err := s.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		return p, fsError(err)
	}
	if err := doc.DataTo(&p); err != nil {
		return p, err
	}
	p.UID = doc.Ref.ID
	return p, nil
}

func (s *FirestoreStore) EnsureProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	if p.Role == "" {
		p.Role = models.RoleStudent
	}
	if p.Bookmarks == nil {
		p.Bookmarks = models.StringSet{}
	}
	_, err := s.client.Collection(usersCollection).Doc(p.UID).Create(ctx, p)
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return models.UserProfile{}, err
	}
	return s.GetProfile(ctx, p.UID)
}

func (s *FirestoreStore) AddBookmark(ctx context.Context, uid, noteID string) (models.StringSet, error) {
	return s.updateBookmarks(ctx, uid, firestore.ArrayUnion(noteID))
}

func (s *FirestoreStore) RemoveBookmark(ctx context.Context, uid, noteID string) (models.StringSet, error) {
	return s.updateBookmarks(ctx, uid, firestore.ArrayRemove(noteID))
}

func (s *FirestoreStore) updateBookmarks(ctx context.Context, uid string, op interface{}) (models.StringSet, error) {
	_, err := s.client.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "bookmarks", Value: op},
	})
	if err != nil {
		return nil, fsError(err)
	}
	p, err := s.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	return p.Bookmarks, nil
}

func (s *FirestoreStore) SetRole(ctx context.Context, uid string, role models.Role) error {
	_, err := s.client.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "role", Value: string(role)},
	})
	return fsError(err)
}

func (s *FirestoreStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	docs, err := s.client.Collection(departmentsCollection).OrderBy("sortOrder", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Department, 0, len(docs))
	for _, doc := range docs {
		var d models.Department
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode department %s: %w", doc.Ref.ID, err)
		}
		d.ID = doc.Ref.ID
		out = append(out, d)
	}
	return out, nil
}

func (s *FirestoreStore) UpsertDepartment(ctx context.Context, dept models.Department) error {
	_, err := s.client.Collection(departmentsCollection).Doc(dept.ID).Set(ctx, dept)
	return err
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	iter := s.client.Collection(departmentsCollection).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// listen forwards every snapshot of q, decoded, until ctx is done
func listen[T any](ctx context.Context, log *zap.Logger, q firestore.Query, decode func([]*firestore.DocumentSnapshot) ([]T, error)) (<-chan []T, error) {
	it := q.Snapshots(ctx)
	out := make(chan []T, 1)

	go func() {
		defer close(out)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					log.Warn("snapshot listener stopped", zap.Error(err))
				}
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				log.Warn("snapshot read failed", zap.Error(err))
				continue
			}
			items, err := decode(docs)
			if err != nil {
				log.Warn("snapshot decode failed", zap.Error(err))
				continue
			}
			select {
			case out <- items:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
