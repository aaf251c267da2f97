package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/internal/repositories"
	"github.com/LackyKannauje/college-updates/validators"
)

// PostService defines the interface for post, like and comment business logic
type PostService interface {
	CreatePost(ctx context.Context, ownerID string, req models.CreatePostRequest, files []models.Upload) (*models.Post, error)
	EditPost(ctx context.Context, postID, callerID string, req models.CreatePostRequest, files []models.Upload) (*models.Post, error)
	DeletePost(ctx context.Context, postID, callerID string) error
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.PostView, error)
	ListPostsByUser(ctx context.Context, userID string) ([]models.PostView, error)
	ListPostsByCategory(ctx context.Context, mediaType string) ([]models.PostView, error)

	LikePost(ctx context.Context, postID, userID string) ([]models.Like, error)
	UnlikePost(ctx context.Context, postID, userID string) ([]models.Like, error)
	ListLikes(ctx context.Context, postID string) ([]models.LikeView, error)

	AddComment(ctx context.Context, postID, userID, text string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) ([]models.Comment, error)
	ListComments(ctx context.Context, postID string) ([]models.CommentView, error)
}

type postService struct {
	posts     repositories.PostRepository
	likes     repositories.LikeRepository
	comments  repositories.CommentRepository
	users     repositories.UserRepository
	media     MediaResolver
	validator *validators.CustomValidator
	now       func() time.Time
}

// NewPostService creates a new post service
func NewPostService(
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	users repositories.UserRepository,
	media MediaResolver,
	v *validators.CustomValidator,
) PostService {
	return &postService{
		posts:     posts,
		likes:     likes,
		comments:  comments,
		users:     users,
		media:     media,
		validator: v,
		now:       time.Now,
	}
}

// CreatePost stores the uploads on the asset host, then persists a post referencing them.
func (s *postService) CreatePost(ctx context.Context, ownerID string, req models.CreatePostRequest, files []models.Upload) (*models.Post, error) {
	owner, err := parseCaller(ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Var("Title", strings.TrimSpace(req.Title), fmt.Sprintf("required,max=%d", models.MaxTitleLength)); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := s.validateDescription(req.Description); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperrors.Validation("At least one media file is required")
	}
	if err := checkMediaCount(files); err != nil {
		return nil, err
	}

	media, err := s.media.Ingest(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}

	post := &models.Post{
		User:        owner,
		Title:       req.Title,
		Description: req.Description,
		Media:       media,
		CreatedAt:   s.now(),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		s.media.ReleaseAll(ctx, media)
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	return post, nil
}

// EditPost updates the non-empty text fields. When files are supplied the media set is
// replaced wholesale and every previous asset is released.
func (s *postService) EditPost(ctx context.Context, postID, callerID string, req models.CreatePostRequest, files []models.Upload) (*models.Post, error) {
	post, err := s.ownedPost(ctx, postID, callerID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		if err := s.validator.Var("Title", req.Title, fmt.Sprintf("max=%d", models.MaxTitleLength)); err != nil {
			return nil, apperrors.Validation(err.Error())
		}
	}
	if err := s.validateDescription(req.Description); err != nil {
		return nil, err
	}
	if err := checkMediaCount(files); err != nil {
		return nil, err
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Description != "" {
		post.Description = req.Description
	}

	var previous []models.Media
	if len(files) > 0 {
		media, err := s.media.Ingest(ctx, files)
		if err != nil {
			return nil, fmt.Errorf("failed to upload media: %w", err)
		}
		previous = post.Media
		post.Media = media
	}

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		if previous != nil {
			s.media.ReleaseAll(ctx, post.Media)
		}
		return nil, err
	}
	s.media.ReleaseAll(ctx, previous)
	return post, nil
}

// DeletePost releases every media asset, then removes the post.
func (s *postService) DeletePost(ctx context.Context, postID, callerID string) error {
	post, err := s.ownedPost(ctx, postID, callerID)
	if err != nil {
		return err
	}
	s.media.ReleaseAll(ctx, post.Media)
	return s.posts.DeletePost(ctx, post.ID)
}

func (s *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	id, err := parseID("post", postID)
	if err != nil {
		return nil, err
	}
	return s.posts.GetPostByID(ctx, id)
}

func (s *postService) ListPosts(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return s.withOwners(ctx, posts)
}

func (s *postService) ListPostsByUser(ctx context.Context, userID string) ([]models.PostView, error) {
	id, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.GetPostsByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withOwners(ctx, posts)
}

// ListPostsByCategory lists posts carrying media of the given type. An unknown type
// matches nothing.
func (s *postService) ListPostsByCategory(ctx context.Context, mediaType string) ([]models.PostView, error) {
	kind := models.MediaKind(strings.ToLower(mediaType))
	if !kind.Valid() {
		return []models.PostView{}, nil
	}
	posts, err := s.posts.GetPostsByMediaType(ctx, kind)
	if err != nil {
		return nil, err
	}
	return s.withOwners(ctx, posts)
}

func (s *postService) LikePost(ctx context.Context, postID, userID string) ([]models.Like, error) {
	user, err := parseCaller(userID)
	if err != nil {
		return nil, err
	}
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if likedBy(post.Likes, user) {
		return nil, apperrors.ErrAlreadyLiked
	}

	like := models.Like{User: user, CreatedAt: s.now()}
	if err := s.likes.AddLike(ctx, post.ID, like); err != nil {
		return nil, err
	}
	return append(post.Likes, like), nil
}

func (s *postService) UnlikePost(ctx context.Context, postID, userID string) ([]models.Like, error) {
	user, err := parseCaller(userID)
	if err != nil {
		return nil, err
	}
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(post.Likes) == 0 {
		return nil, apperrors.ErrNoLikes
	}
	if !likedBy(post.Likes, user) {
		return nil, apperrors.ErrNotLiked
	}

	if err := s.likes.RemoveLike(ctx, post.ID, user); err != nil {
		return nil, err
	}
	remaining := make([]models.Like, 0, len(post.Likes)-1)
	for _, l := range post.Likes {
		if l.User != user {
			remaining = append(remaining, l)
		}
	}
	return remaining, nil
}

func (s *postService) ListLikes(ctx context.Context, postID string) ([]models.LikeView, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(post.Likes))
	for i, l := range post.Likes {
		ids[i] = l.User
	}
	users, err := identities(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.LikeView, len(post.Likes))
	for i, l := range post.Likes {
		views[i] = models.LikeView{User: users[i], CreatedAt: l.CreatedAt}
	}
	return views, nil
}

func (s *postService) AddComment(ctx context.Context, postID, userID, text string) ([]models.Comment, error) {
	user, err := parseCaller(userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.Validation("Text is required")
	}
	if err := s.validator.Var("Text", text, fmt.Sprintf("max=%d", models.MaxCommentLength)); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{User: user, Text: text, CreatedAt: s.now()}
	if err := s.comments.AddComment(ctx, post.ID, comment); err != nil {
		return nil, err
	}
	return append(post.Comments, *comment), nil
}

// DeleteComment removes a comment from a post. Any authenticated user may delete any
// comment; ownership is not checked.
func (s *postService) DeleteComment(ctx context.Context, postID, commentID string) ([]models.Comment, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	cid, err := parseID("comment", commentID)
	if err != nil {
		return nil, err
	}

	remaining := make([]models.Comment, 0, len(post.Comments))
	for _, c := range post.Comments {
		if c.ID != cid {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == len(post.Comments) {
		return nil, fmt.Errorf("comment %s: %w", commentID, apperrors.ErrNotFound)
	}

	if err := s.comments.DeleteComment(ctx, post.ID, cid); err != nil {
		return nil, err
	}
	return remaining, nil
}

func (s *postService) ListComments(ctx context.Context, postID string) ([]models.CommentView, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(post.Comments))
	for i, c := range post.Comments {
		ids[i] = c.User
	}
	users, err := identities(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommentView, len(post.Comments))
	for i, c := range post.Comments {
		views[i] = models.CommentView{ID: c.ID, User: users[i], Text: c.Text, CreatedAt: c.CreatedAt}
	}
	return views, nil
}

// ownedPost loads the post and checks that callerID owns it.
func (s *postService) ownedPost(ctx context.Context, postID, callerID string) (*models.Post, error) {
	caller, err := parseCaller(callerID)
	if err != nil {
		return nil, err
	}
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.User != caller {
		return nil, apperrors.ErrUnauthorized
	}
	return post, nil
}

// withOwners joins each post's owner summary {username, bio, profilePicture}.
func (s *postService) withOwners(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	ids := make([]primitive.ObjectID, len(posts))
	for i, p := range posts {
		ids[i] = p.User
	}
	owners, err := s.users.GetUserSummaries(ctx, unique(ids))
	if err != nil {
		return nil, err
	}
	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		owner, ok := owners[p.User]
		if !ok {
			owner = models.UserSummary{ID: p.User}
		}
		views[i] = models.NewPostView(p, owner)
	}
	return views, nil
}

func (s *postService) validateDescription(description string) error {
	if description == "" {
		return nil
	}
	if err := s.validator.Var("Description", description, fmt.Sprintf("max=%d", models.MaxDescriptionLength)); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}

func checkMediaCount(files []models.Upload) error {
	if len(files) > models.MaxPostMedia {
		return apperrors.Validation(fmt.Sprintf("A post can carry at most %d media files", models.MaxPostMedia))
	}
	return nil
}

func likedBy(likes []models.Like, user primitive.ObjectID) bool {
	for _, l := range likes {
		if l.User == user {
			return true
		}
	}
	return false
}
