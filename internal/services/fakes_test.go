package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/auth"
	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/validators"
)

// memDB is an in-memory stand-in for the users and posts collections.
// It implements every repository interface the services depend on.
type memDB struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
	posts map[primitive.ObjectID]*models.Post
	order []primitive.ObjectID // post insertion order
}

func newMemDB() *memDB {
	return &memDB{
		users: map[primitive.ObjectID]*models.User{},
		posts: map[primitive.ObjectID]*models.Post{},
	}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Followers = append([]primitive.ObjectID{}, u.Followers...)
	c.Following = append([]primitive.ObjectID{}, u.Following...)
	return &c
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Media = append([]models.Media{}, p.Media...)
	c.Likes = append([]models.Like{}, p.Likes...)
	c.Comments = append([]models.Comment{}, p.Comments...)
	return &c
}

// users

func (db *memDB) CreateUser(_ context.Context, user *models.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	db.users[user.ID] = cloneUser(user)
	return nil
}

func (db *memDB) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return cloneUser(u), nil
}

func (db *memDB) UserExists(_ context.Context, id primitive.ObjectID) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.users[id]
	return ok, nil
}

func (db *memDB) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("user with email: %w", apperrors.ErrNotFound)
}

func (db *memDB) GetUserSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := map[primitive.ObjectID]models.UserSummary{}
	for _, id := range ids {
		if u, ok := db.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

func (db *memDB) SearchUsers(_ context.Context, pattern string) ([]models.UserSummary, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := []models.UserSummary{}
	for _, u := range db.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(pattern)) {
			out = append(out, u.Summary().Identity())
		}
	}
	return out, nil
}

func (db *memDB) UpdateUser(_ context.Context, user *models.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[user.ID]
	if !ok {
		return fmt.Errorf("user %s: %w", user.ID.Hex(), apperrors.ErrNotFound)
	}
	u.Username = user.Username
	u.Bio = user.Bio
	u.ProfilePicture = user.ProfilePicture
	return nil
}

func (db *memDB) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	delete(db.users, id)
	return nil
}

// follows

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, x := range set {
		if x == id {
			return set
		}
	}
	return append(set, id)
}

func pull(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, x := range set {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

func (db *memDB) Follow(_ context.Context, followerID, targetID primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if u, ok := db.users[followerID]; ok {
		u.Following = addToSet(u.Following, targetID)
	}
	if u, ok := db.users[targetID]; ok {
		u.Followers = addToSet(u.Followers, followerID)
	}
	return nil
}

func (db *memDB) Unfollow(_ context.Context, followerID, targetID primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if u, ok := db.users[followerID]; ok {
		u.Following = pull(u.Following, targetID)
	}
	if u, ok := db.users[targetID]; ok {
		u.Followers = pull(u.Followers, followerID)
	}
	return nil
}

func (db *memDB) RemoveFromGraph(_ context.Context, userID primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		u.Followers = pull(u.Followers, userID)
		u.Following = pull(u.Following, userID)
	}
	return nil
}

// posts

func (db *memDB) CreatePost(_ context.Context, post *models.Post) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	post.ID = primitive.NewObjectID()
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	db.posts[post.ID] = clonePost(post)
	db.order = append(db.order, post.ID)
	return nil
}

func (db *memDB) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return clonePost(p), nil
}

// findPosts returns matching posts newest first.
func (db *memDB) findPosts(match func(*models.Post) bool) []models.Post {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := []models.Post{}
	for i := len(db.order) - 1; i >= 0; i-- {
		p, ok := db.posts[db.order[i]]
		if ok && match(p) {
			out = append(out, *clonePost(p))
		}
	}
	return out
}

func (db *memDB) GetAllPosts(context.Context) ([]models.Post, error) {
	return db.findPosts(func(*models.Post) bool { return true }), nil
}

func (db *memDB) GetPostsByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return db.findPosts(func(p *models.Post) bool { return p.User == userID }), nil
}

func (db *memDB) GetPostsByMediaType(_ context.Context, kind models.MediaKind) ([]models.Post, error) {
	return db.findPosts(func(p *models.Post) bool { return p.HasMediaType(kind) }), nil
}

func (db *memDB) UpdatePost(_ context.Context, post *models.Post) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.posts[post.ID]
	if !ok {
		return fmt.Errorf("post %s: %w", post.ID.Hex(), apperrors.ErrNotFound)
	}
	p.Title = post.Title
	p.Description = post.Description
	p.Media = append([]models.Media{}, post.Media...)
	return nil
}

func (db *memDB) DeletePost(_ context.Context, id primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.posts[id]; !ok {
		return fmt.Errorf("post %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	delete(db.posts, id)
	return nil
}

func (db *memDB) RemoveUserActivity(_ context.Context, userID primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, p := range db.posts {
		likes := p.Likes[:0]
		for _, l := range p.Likes {
			if l.User != userID {
				likes = append(likes, l)
			}
		}
		p.Likes = likes
		comments := p.Comments[:0]
		for _, c := range p.Comments {
			if c.User != userID {
				comments = append(comments, c)
			}
		}
		p.Comments = comments
	}
	return nil
}

// likes and comments

func (db *memDB) AddLike(_ context.Context, postID primitive.ObjectID, like models.Like) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.posts[postID]
	if !ok {
		return fmt.Errorf("post %s: %w", postID.Hex(), apperrors.ErrNotFound)
	}
	if likedBy(p.Likes, like.User) {
		return apperrors.ErrAlreadyLiked
	}
	p.Likes = append(p.Likes, like)
	return nil
}

func (db *memDB) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.posts[postID]
	if !ok {
		return fmt.Errorf("post %s: %w", postID.Hex(), apperrors.ErrNotFound)
	}
	if !likedBy(p.Likes, userID) {
		return apperrors.ErrNotLiked
	}
	likes := p.Likes[:0]
	for _, l := range p.Likes {
		if l.User != userID {
			likes = append(likes, l)
		}
	}
	p.Likes = likes
	return nil
}

func (db *memDB) AddComment(_ context.Context, postID primitive.ObjectID, comment *models.Comment) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.posts[postID]
	if !ok {
		return fmt.Errorf("post %s: %w", postID.Hex(), apperrors.ErrNotFound)
	}
	comment.ID = primitive.NewObjectID()
	p.Comments = append(p.Comments, *comment)
	return nil
}

func (db *memDB) DeleteComment(_ context.Context, postID, commentID primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.posts[postID]
	if !ok {
		return fmt.Errorf("post %s: %w", postID.Hex(), apperrors.ErrNotFound)
	}
	comments := p.Comments[:0]
	for _, c := range p.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}
	if len(comments) == len(p.Comments) {
		return fmt.Errorf("comment %s: %w", commentID.Hex(), apperrors.ErrNotFound)
	}
	p.Comments = comments
	return nil
}

// recordingStore is an AssetStore that remembers what was stored and released.
// Like Cloudinary with auto typing, it picks the resource class itself and
// records it in the returned URL.
type recordingStore struct {
	mu            sync.Mutex
	stored        map[string]string // key -> content type
	released      []string
	releasedTypes map[string]string // key -> resource class passed to Release
	failRelease   bool
	failStore     bool
}

func newRecordingStore() *recordingStore {
	return &recordingStore{stored: map[string]string{}, releasedTypes: map[string]string{}}
}

func autoResourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"), contentType == "application/pdf":
		return "image"
	case strings.HasPrefix(contentType, "video/"), strings.HasPrefix(contentType, "audio/"):
		return "video"
	default:
		return "raw"
	}
}

func (s *recordingStore) Store(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failStore {
		return "", errors.New("asset host unavailable")
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	s.stored[key] = contentType
	return "https://res.example.com/demo/" + autoResourceType(contentType) + "/upload/v1/" + key + ".bin", nil
}

func (s *recordingStore) Release(_ context.Context, key, resourceType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = append(s.released, key)
	s.releasedTypes[key] = resourceType
	if s.failRelease {
		return errors.New("asset host unavailable")
	}
	return nil
}

func (s *recordingStore) releasedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.released...)
}

// fixture wires every service to one memDB and one recordingStore.
type fixture struct {
	db      *memDB
	store   *recordingStore
	jwt     *auth.JWTService
	auth    AuthService
	posts   PostService
	follows FollowService
	users   UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newMemDB()
	store := newRecordingStore()
	v := validators.NewValidator()
	jwtService := auth.NewJWTService("test-secret")
	resolver := NewMediaResolver(store)

	authSvc := NewAuthService(db, jwtService, v)
	authSvc.(*authService).bcryptCost = bcrypt.MinCost

	return &fixture{
		db:      db,
		store:   store,
		jwt:     jwtService,
		auth:    authSvc,
		posts:   NewPostService(db, db, db, db, resolver, v),
		follows: NewFollowService(db, db),
		users:   NewUserService(db, db, db, resolver),
	}
}

// register creates an account and returns its id.
func (f *fixture) register(t *testing.T, username string) string {
	t.Helper()
	ctx := context.Background()
	token, err := f.auth.Register(ctx, models.RegisterRequest{
		Username: username,
		Email:    strings.ToLower(username) + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	id, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	return id
}

// createPost creates a post carrying the given uploads and returns it.
func (f *fixture) createPost(t *testing.T, ownerID, title string, files ...models.Upload) *models.Post {
	t.Helper()
	if len(files) == 0 {
		files = []models.Upload{pngUpload()}
	}
	post, err := f.posts.CreatePost(context.Background(), ownerID, models.CreatePostRequest{Title: title}, files)
	require.NoError(t, err)
	return post
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func pngUpload() models.Upload {
	return models.Upload{Filename: "photo.png", ContentType: "image/png", File: bytes.NewReader(pngHeader)}
}

func pdfUpload() models.Upload {
	return models.Upload{
		Filename:    "notes.pdf",
		ContentType: "application/pdf",
		File:        bytes.NewReader([]byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")),
	}
}

func textUpload() models.Upload {
	return models.Upload{Filename: "readme.txt", ContentType: "text/plain", File: bytes.NewReader([]byte("plain notes for the class\n"))}
}

func audioUpload() models.Upload {
	return models.Upload{
		Filename:    "lecture.mp3",
		ContentType: "audio/mpeg",
		File:        bytes.NewReader([]byte("ID3\x03\x00\x00\x00\x00\x00\x0a\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")),
	}
}
