package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/idil/registrar/internal/app/auth"
	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/models/dto"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
	"github.com/idil/registrar/internal/pkg/helpers"
)

// CommunityService defines the interface for community board operations
type CommunityService interface {
	GetAllPosts(ctx context.Context, filter *dto.CommunityPostFilterRequest) (*dto.CommunityPostListResponse, error)
	GetPostByID(ctx context.Context, id int64) (*dto.CommunityPostResponse, error)
	CreatePost(ctx context.Context, authorID int64, req *dto.CreateCommunityPostRequest) (*dto.CommunityPostResponse, error)
	UpdatePost(ctx context.Context, id, userID int64, role models.Role, req *dto.UpdateCommunityPostRequest) (*dto.CommunityPostResponse, error)
	DeletePost(ctx context.Context, id, userID int64, role models.Role) error
}

type communityServiceImpl struct {
	postRepo     *repositories.CommunityPostRepository
	authzService *auth.AuthorizationService
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(
	postRepo *repositories.CommunityPostRepository,
	authzService *auth.AuthorizationService,
) CommunityService {
	return &communityServiceImpl{
		postRepo:     postRepo,
		authzService: authzService,
	}
}

// GetAllPosts retrieves board posts with filtering and pagination, newest first
func (s *communityServiceImpl) GetAllPosts(ctx context.Context, filter *dto.CommunityPostFilterRequest) (*dto.CommunityPostListResponse, error) {
	posts, total, err := s.postRepo.GetAll(ctx, filter.AuthorID, filter.Query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting posts: %w", err)
	}

	responses := make([]dto.CommunityPostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, dto.NewCommunityPostResponse(&posts[i]))
	}

	return &dto.CommunityPostListResponse{
		Posts:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetPostByID retrieves a post with its author
func (s *communityServiceImpl) GetPostByID(ctx context.Context, id int64) (*dto.CommunityPostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	if post == nil {
		return nil, apperrors.ErrPostNotFound
	}

	resp := dto.NewCommunityPostResponse(post)
	return &resp, nil
}

// CreatePost publishes a post on the community board
func (s *communityServiceImpl) CreatePost(ctx context.Context, authorID int64, req *dto.CreateCommunityPostRequest) (*dto.CommunityPostResponse, error) {
	post := &models.CommunityPost{
		AuthorID: authorID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	resp := dto.NewCommunityPostResponse(post)
	return &resp, nil
}

// UpdatePost edits a post. Only the author or an admin may edit.
func (s *communityServiceImpl) UpdatePost(ctx context.Context, id, userID int64, role models.Role, req *dto.UpdateCommunityPostRequest) (*dto.CommunityPostResponse, error) {
	if err := s.authzService.ValidatePostOwnership(ctx, id, userID, role); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	if post == nil {
		return nil, apperrors.ErrPostNotFound
	}

	post.Title = strings.TrimSpace(req.Title)
	post.Content = req.Content

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	resp := dto.NewCommunityPostResponse(post)
	return &resp, nil
}

// DeletePost removes a post. Only the author or an admin may delete.
func (s *communityServiceImpl) DeletePost(ctx context.Context, id, userID int64, role models.Role) error {
	if err := s.authzService.ValidatePostOwnership(ctx, id, userID, role); err != nil {
		return err
	}

	return s.postRepo.Delete(ctx, id)
}
