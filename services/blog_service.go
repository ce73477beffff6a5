package services

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gospelcms/models"
	"gospelcms/storage"
)

const (
	defaultPageLimit    = 10
	defaultRelatedLimit = 3
	defaultViewDelay    = 3 * time.Second
)

// BlogService owns the posts, categories and tags record sets. Every mutation
// is a read-modify-write of a whole set under the mutex, so slug uniqueness is
// always checked against current state.
type BlogService struct {
	mu        sync.RWMutex
	store     storage.Storage
	viewDelay time.Duration
}

func NewBlogService(store storage.Storage) *BlogService {
	return &BlogService{
		store:     store,
		viewDelay: defaultViewDelay,
	}
}

func (s *BlogService) CreatePost(req *models.CreatePostRequest, authorID, authorName string) (*models.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if req.Content == "" {
		return nil, &ValidationError{Field: "content"}
	}
	if req.Status != models.PostStatusDraft && req.Status != models.PostStatusPublished {
		return nil, &ValidationError{Field: "status"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := loadSet[models.Post](s.store, postsKey)
	if err != nil {
		return nil, err
	}
	categories, err := loadSet[models.Category](s.store, categoriesKey)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:              uuid.New().String(),
		Title:           req.Title,
		Slug:            uniqueSlug(req.Title, takenSlugs(posts, "")),
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		FeaturedImage:   req.FeaturedImage,
		CategoryID:      req.CategoryID,
		CategoryName:    resolveCategoryName(categories, req.CategoryID),
		Tags:            req.Tags,
		Status:          req.Status,
		AuthorID:        authorID,
		AuthorName:      authorName,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.Status == models.PostStatusPublished {
		post.PublishedAt = &now
	}
	applyMetaDefaults(&post)

	// Head insertion keeps the default listing newest-first.
	posts = append([]models.Post{post}, posts...)
	if err := saveSet(s.store, postsKey, posts); err != nil {
		return nil, err
	}

	return &post, nil
}

func (s *BlogService) UpdatePost(id string, req *models.UpdatePostRequest) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := loadSet[models.Post](s.store, postsKey)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	post := &posts[idx]

	if req.Title != nil && *req.Title != post.Title {
		post.Title = *req.Title
		post.Slug = uniqueSlug(post.Title, takenSlugs(posts, post.ID))
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = *req.FeaturedImage
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
		if post.Tags == nil {
			post.Tags = []string{}
		}
	}
	if req.MetaTitle != nil {
		post.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		post.MetaDescription = *req.MetaDescription
	}

	now := time.Now().UTC()
	if req.Status != nil {
		// PublishedAt is set on the first transition to published and never
		// cleared afterwards, not even by reverting to draft.
		if *req.Status == models.PostStatusPublished && post.PublishedAt == nil {
			post.PublishedAt = &now
		}
		post.Status = *req.Status
	}

	if req.CategoryID != nil && *req.CategoryID != post.CategoryID {
		categories, err := loadSet[models.Category](s.store, categoriesKey)
		if err != nil {
			return nil, err
		}
		post.CategoryID = *req.CategoryID
		post.CategoryName = resolveCategoryName(categories, post.CategoryID)
	}

	applyMetaDefaults(post)
	post.UpdatedAt = now

	if err := saveSet(s.store, postsKey, posts); err != nil {
		return nil, err
	}

	updated := *post
	return &updated, nil
}

// DeletePost removes the post if present. Deleting a missing id is a no-op.
func (s *BlogService) DeletePost(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := loadSet[models.Post](s.store, postsKey)
	if err != nil {
		return err
	}

	kept := posts[:0]
	for _, post := range posts {
		if post.ID != id {
			kept = append(kept, post)
		}
	}
	if len(kept) == len(posts) {
		return nil
	}

	return saveSet(s.store, postsKey, kept)
}

func (s *BlogService) GetPost(id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts, err := loadSet[models.Post](s.store, postsKey)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			post := posts[i]
			return &post, nil
		}
	}
	return nil, ErrNotFound
}

// GetPostBySlug returns the post and schedules a deferred view increment so
// instantaneous bounces are not counted as reads. The increment is
// best-effort and never awaited.
func (s *BlogService) GetPostBySlug(slug string) (*models.Post, error) {
	s.mu.RLock()
	posts, err := loadSet[models.Post](s.store, postsKey)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].Slug == slug {
			post := posts[i]
			id := post.ID
			time.AfterFunc(s.viewDelay, func() {
				_ = s.IncrementViews(id)
			})
			return &post, nil
		}
	}
	return nil, ErrNotFound
}

// ListPublic serves the public site: only published posts, whatever the
// caller put in the status filter.
func (s *BlogService) ListPublic(filters models.PostFilters) (*models.PostPage, error) {
	filters.Status = models.PostStatusPublished
	return s.list(filters)
}

// ListAdmin serves the admin panel: all statuses unless filtered explicitly.
func (s *BlogService) ListAdmin(filters models.PostFilters) (*models.PostPage, error) {
	return s.list(filters)
}

func (s *BlogService) list(filters models.PostFilters) (*models.PostPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts, err := loadSet[models.Post](s.store, postsKey)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if matchesFilters(&post, &filters) {
			filtered = append(filtered, post)
		}
	}

	sortPosts(filtered, filters.SortBy, filters.SortOrder)

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}

	total := len(filtered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &models.PostPage{
		Posts:      filtered[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// GetRelatedPosts returns up to limit other published posts sharing the
// anchor's category or at least one tag, newest first. A missing anchor slug
// yields an empty list, not an error.
func (s *BlogService) GetRelatedPosts(slug string, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	posts, err := loadSet[models.Post](s.store, postsKey)
	if err != nil {
		return nil, err
	}

	var anchor *models.Post
	for i := range posts {
		if posts[i].Slug == slug {
			anchor = &posts[i]
			break
		}
	}
	if anchor == nil {
		return []models.Post{}, nil
	}

	related := make([]models.Post, 0, limit)
	for _, post := range posts {
		if post.ID == anchor.ID || post.Status != models.PostStatusPublished {
			continue
		}
		sameCategory := anchor.CategoryID != "" && post.CategoryID == anchor.CategoryID
		if sameCategory || sharesTag(post.Tags, anchor.Tags) {
			related = append(related, post)
		}
	}

	sort.SliceStable(related, func(i, j int) bool {
		return related[i].CreatedAt.After(related[j].CreatedAt)
	})
	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

func (s *BlogService) GetCategories() ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return loadSet[models.Category](s.store, categoriesKey)
}

func (s *BlogService) GetTags() ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return loadSet[models.Tag](s.store, tagsKey)
}

// IncrementViews adds one view to the post. A missing id is a no-op, so a
// deferred increment cannot fail after its post was deleted.
func (s *BlogService) IncrementViews(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := loadSet[models.Post](s.store, postsKey)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].ID == id {
			posts[i].Views++
			return saveSet(s.store, postsKey, posts)
		}
	}
	return nil
}

func takenSlugs(posts []models.Post, excludeID string) map[string]bool {
	taken := make(map[string]bool, len(posts))
	for _, post := range posts {
		if post.ID != excludeID {
			taken[post.Slug] = true
		}
	}
	return taken
}

func resolveCategoryName(categories []models.Category, categoryID string) string {
	for _, category := range categories {
		if category.ID == categoryID {
			return category.Name
		}
	}
	return "Uncategorized"
}

func applyMetaDefaults(post *models.Post) {
	if post.MetaTitle == "" {
		post.MetaTitle = post.Title
	}
	if post.MetaDescription == "" {
		post.MetaDescription = post.Excerpt
	}
}

func matchesFilters(post *models.Post, filters *models.PostFilters) bool {
	if filters.Status != "" && post.Status != filters.Status {
		return false
	}
	if filters.CategoryID != "" && post.CategoryID != filters.CategoryID {
		return false
	}
	if filters.AuthorID != "" && post.AuthorID != filters.AuthorID {
		return false
	}
	if filters.Tag != "" && !containsTag(post.Tags, filters.Tag) {
		return false
	}
	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		if !strings.Contains(strings.ToLower(post.Title), needle) &&
			!strings.Contains(strings.ToLower(post.Excerpt), needle) &&
			!strings.Contains(strings.ToLower(post.Content), needle) {
			return false
		}
	}
	return true
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func sharesTag(a, b []string) bool {
	for _, tag := range a {
		if containsTag(b, tag) {
			return true
		}
	}
	return false
}

func sortPosts(posts []models.Post, sortBy, sortOrder string) {
	if sortBy == "" {
		sortBy = "created_at"
	}
	desc := sortOrder != "asc"

	sort.SliceStable(posts, func(i, j int) bool {
		if desc {
			return postLess(&posts[j], &posts[i], sortBy)
		}
		return postLess(&posts[i], &posts[j], sortBy)
	})
}

func postLess(a, b *models.Post, field string) bool {
	switch field {
	case "updated_at":
		return a.UpdatedAt.Before(b.UpdatedAt)
	case "published_at":
		return timeOrZero(a.PublishedAt).Before(timeOrZero(b.PublishedAt))
	case "title":
		return a.Title < b.Title
	case "slug":
		return a.Slug < b.Slug
	case "views":
		return a.Views < b.Views
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
