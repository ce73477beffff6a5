package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gospelcms/models"
	"gospelcms/storage"
)

func newTestService(t *testing.T) *BlogService {
	t.Helper()
	svc := NewBlogService(storage.NewMemoryStorage())
	svc.viewDelay = time.Millisecond
	return svc
}

func mustCreate(t *testing.T, svc *BlogService, req *models.CreatePostRequest) *models.Post {
	t.Helper()
	post, err := svc.CreatePost(req, "author-1", "Test Author")
	require.NoError(t, err)
	return post
}

func draftReq(title string) *models.CreatePostRequest {
	return &models.CreatePostRequest{Title: title, Content: "<p>body</p>", Status: models.PostStatusDraft}
}

func publishedReq(title string) *models.CreatePostRequest {
	return &models.CreatePostRequest{Title: title, Content: "<p>body</p>", Status: models.PostStatusPublished}
}

func strPtr(s string) *string { return &s }

func statusPtr(s models.PostStatus) *models.PostStatus { return &s }

func TestCreatePost(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		svc := newTestService(t)

		post := mustCreate(t, svc, &models.CreatePostRequest{
			Title:         "A New Song",
			Content:       "<p>lyrics</p>",
			Excerpt:       "short",
			FeaturedImage: "https://cdn.example.com/cover.jpg",
			Tags:          []string{"worship", "praise"},
			Status:        models.PostStatusPublished,
		})

		got, err := svc.GetPost(post.ID)
		require.NoError(t, err)

		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "A New Song", got.Title)
		assert.Equal(t, "a-new-song", got.Slug)
		assert.Equal(t, "<p>lyrics</p>", got.Content)
		assert.Equal(t, "short", got.Excerpt)
		assert.Equal(t, "https://cdn.example.com/cover.jpg", got.FeaturedImage)
		assert.Equal(t, []string{"worship", "praise"}, got.Tags)
		assert.Equal(t, "author-1", got.AuthorID)
		assert.Equal(t, "Test Author", got.AuthorName)
		assert.Equal(t, 0, got.Views)
		assert.False(t, got.CreatedAt.IsZero())
		assert.False(t, got.UpdatedAt.IsZero())
	})

	t.Run("meta fields default to title and excerpt", func(t *testing.T) {
		svc := newTestService(t)

		post := mustCreate(t, svc, &models.CreatePostRequest{
			Title:   "Untagged Song",
			Content: "<p>x</p>",
			Excerpt: "the excerpt",
			Status:  models.PostStatusDraft,
		})

		assert.Equal(t, "Untagged Song", post.MetaTitle)
		assert.Equal(t, "the excerpt", post.MetaDescription)
	})

	t.Run("unknown category falls back to Uncategorized", func(t *testing.T) {
		svc := newTestService(t)

		req := draftReq("No Category")
		req.CategoryID = "does-not-exist"
		post := mustCreate(t, svc, req)

		assert.Equal(t, "Uncategorized", post.CategoryName)
	})

	t.Run("known category is resolved at write time", func(t *testing.T) {
		svc := newTestService(t)
		require.NoError(t, svc.Seed())

		req := draftReq("Sunday Set")
		req.CategoryID = "worship"
		post := mustCreate(t, svc, req)

		assert.Equal(t, "Worship", post.CategoryName)
	})

	t.Run("published post gets published_at", func(t *testing.T) {
		svc := newTestService(t)

		published := mustCreate(t, svc, publishedReq("Published"))
		draft := mustCreate(t, svc, draftReq("Draft"))

		require.NotNil(t, published.PublishedAt)
		assert.Nil(t, draft.PublishedAt)
	})

	t.Run("missing required fields are validation errors", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.CreatePost(&models.CreatePostRequest{Title: "  ", Content: "x", Status: models.PostStatusDraft}, "a", "A")
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "title", validationErr.Field)

		_, err = svc.CreatePost(&models.CreatePostRequest{Title: "t", Status: models.PostStatusDraft}, "a", "A")
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "content", validationErr.Field)
	})
}

func TestSlugUniqueness(t *testing.T) {
	svc := newTestService(t)

	first := mustCreate(t, svc, publishedReq("Hello World"))
	second := mustCreate(t, svc, publishedReq("Hello World!"))
	third := mustCreate(t, svc, publishedReq("Hello, World"))

	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "hello-world-1", second.Slug)
	assert.Equal(t, "hello-world-2", third.Slug)
}

func TestUpdatePost(t *testing.T) {
	t.Run("missing id is NotFound", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.UpdatePost("missing", &models.UpdatePostRequest{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("absent fields stay untouched, empty strings clear", func(t *testing.T) {
		svc := newTestService(t)

		req := draftReq("Keep Me")
		req.Excerpt = "old excerpt"
		req.FeaturedImage = "https://cdn.example.com/a.jpg"
		post := mustCreate(t, svc, req)

		updated, err := svc.UpdatePost(post.ID, &models.UpdatePostRequest{
			Excerpt: strPtr(""),
		})
		require.NoError(t, err)

		assert.Equal(t, "", updated.Excerpt)
		assert.Equal(t, "Keep Me", updated.Title)
		assert.Equal(t, "https://cdn.example.com/a.jpg", updated.FeaturedImage)
	})

	t.Run("title change regenerates slug against other posts", func(t *testing.T) {
		svc := newTestService(t)

		mustCreate(t, svc, publishedReq("Taken Title"))
		post := mustCreate(t, svc, publishedReq("Original"))

		updated, err := svc.UpdatePost(post.ID, &models.UpdatePostRequest{Title: strPtr("Taken Title")})
		require.NoError(t, err)

		assert.Equal(t, "taken-title-1", updated.Slug)
	})

	t.Run("published_at is set once and never cleared", func(t *testing.T) {
		svc := newTestService(t)

		post := mustCreate(t, svc, draftReq("Lifecycle"))
		require.Nil(t, post.PublishedAt)

		published, err := svc.UpdatePost(post.ID, &models.UpdatePostRequest{Status: statusPtr(models.PostStatusPublished)})
		require.NoError(t, err)
		require.NotNil(t, published.PublishedAt)
		firstPublish := *published.PublishedAt

		reverted, err := svc.UpdatePost(post.ID, &models.UpdatePostRequest{Status: statusPtr(models.PostStatusDraft)})
		require.NoError(t, err)
		assert.Equal(t, models.PostStatusDraft, reverted.Status)
		require.NotNil(t, reverted.PublishedAt)
		assert.Equal(t, firstPublish, *reverted.PublishedAt)

		republished, err := svc.UpdatePost(post.ID, &models.UpdatePostRequest{Status: statusPtr(models.PostStatusPublished)})
		require.NoError(t, err)
		require.NotNil(t, republished.PublishedAt)
		assert.Equal(t, firstPublish, *republished.PublishedAt)
	})

	t.Run("category change re-resolves name", func(t *testing.T) {
		svc := newTestService(t)
		require.NoError(t, svc.Seed())

		req := draftReq("Moving Category")
		req.CategoryID = "worship"
		post := mustCreate(t, svc, req)
		require.Equal(t, "Worship", post.CategoryName)

		updated, err := svc.UpdatePost(post.ID, &models.UpdatePostRequest{CategoryID: strPtr("testimonies")})
		require.NoError(t, err)
		assert.Equal(t, "Testimonies", updated.CategoryName)

		cleared, err := svc.UpdatePost(post.ID, &models.UpdatePostRequest{CategoryID: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "Uncategorized", cleared.CategoryName)
	})
}

func TestDeletePost(t *testing.T) {
	svc := newTestService(t)

	post := mustCreate(t, svc, publishedReq("Short Lived"))

	require.NoError(t, svc.DeletePost(post.ID))
	_, err := svc.GetPost(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, svc.DeletePost(post.ID))

	// The slug is free again.
	recreated := mustCreate(t, svc, publishedReq("Short Lived"))
	assert.Equal(t, "short-lived", recreated.Slug)
}

func TestGetPostBySlug(t *testing.T) {
	t.Run("missing slug is NotFound", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.GetPostBySlug("missing-slug")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("read schedules a deferred view increment", func(t *testing.T) {
		svc := newTestService(t)

		post := mustCreate(t, svc, publishedReq("Counted"))

		got, err := svc.GetPostBySlug("counted")
		require.NoError(t, err)
		// The increment has not landed at return time.
		assert.Equal(t, 0, got.Views)

		require.Eventually(t, func() bool {
			p, err := svc.GetPost(post.ID)
			return err == nil && p.Views == 1
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("increment after delete is harmless", func(t *testing.T) {
		svc := newTestService(t)

		post := mustCreate(t, svc, publishedReq("Gone Soon"))
		_, err := svc.GetPostBySlug("gone-soon")
		require.NoError(t, err)
		require.NoError(t, svc.DeletePost(post.ID))

		// Give the deferred increment time to fire against the missing id.
		time.Sleep(20 * time.Millisecond)
		_, err = svc.GetPost(post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestIncrementViews(t *testing.T) {
	svc := newTestService(t)

	post := mustCreate(t, svc, publishedReq("Popular"))

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.IncrementViews(post.ID))
	}

	got, err := svc.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Views)

	// Missing id is a no-op, not an error.
	assert.NoError(t, svc.IncrementViews("missing"))
}

func TestListing(t *testing.T) {
	t.Run("public listing never returns drafts", func(t *testing.T) {
		svc := newTestService(t)

		mustCreate(t, svc, publishedReq("Visible"))
		mustCreate(t, svc, draftReq("Hidden"))

		page, err := svc.ListPublic(models.PostFilters{})
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, "Visible", page.Posts[0].Title)

		// Even an explicit draft filter cannot leak drafts publicly.
		page, err = svc.ListPublic(models.PostFilters{Status: models.PostStatusDraft})
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, models.PostStatusPublished, page.Posts[0].Status)
	})

	t.Run("admin listing defaults to all statuses", func(t *testing.T) {
		svc := newTestService(t)

		mustCreate(t, svc, publishedReq("Visible"))
		mustCreate(t, svc, draftReq("Hidden"))

		page, err := svc.ListAdmin(models.PostFilters{})
		require.NoError(t, err)
		assert.Len(t, page.Posts, 2)

		page, err = svc.ListAdmin(models.PostFilters{Status: models.PostStatusDraft})
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, "Hidden", page.Posts[0].Title)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		svc := newTestService(t)

		tagged := publishedReq("Worship Night Recap")
		tagged.Tags = []string{"worship", "tour"}
		tagged.CategoryID = "worship"
		mustCreate(t, svc, tagged)

		other := publishedReq("Studio Diary")
		other.Tags = []string{"studio"}
		mustCreate(t, svc, other)

		page, err := svc.ListAdmin(models.PostFilters{Tag: "worship", CategoryID: "worship"})
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, "Worship Night Recap", page.Posts[0].Title)

		page, err = svc.ListAdmin(models.PostFilters{Tag: "worship", CategoryID: "other"})
		require.NoError(t, err)
		assert.Empty(t, page.Posts)
	})

	t.Run("search matches title excerpt and content case-insensitively", func(t *testing.T) {
		svc := newTestService(t)

		inTitle := publishedReq("Hallelujah Sessions")
		mustCreate(t, svc, inTitle)

		inContent := publishedReq("Another Post")
		inContent.Content = "<p>we sang hallelujah all night</p>"
		mustCreate(t, svc, inContent)

		miss := publishedReq("Unrelated")
		mustCreate(t, svc, miss)

		page, err := svc.ListAdmin(models.PostFilters{Search: "HALLELUJAH"})
		require.NoError(t, err)
		assert.Len(t, page.Posts, 2)
	})

	t.Run("sorting by title ascending", func(t *testing.T) {
		svc := newTestService(t)

		mustCreate(t, svc, publishedReq("Charlie"))
		mustCreate(t, svc, publishedReq("Alpha"))
		mustCreate(t, svc, publishedReq("Bravo"))

		page, err := svc.ListAdmin(models.PostFilters{SortBy: "title", SortOrder: "asc"})
		require.NoError(t, err)
		require.Len(t, page.Posts, 3)
		assert.Equal(t, "Alpha", page.Posts[0].Title)
		assert.Equal(t, "Bravo", page.Posts[1].Title)
		assert.Equal(t, "Charlie", page.Posts[2].Title)
	})

	t.Run("default order is newest first", func(t *testing.T) {
		svc := newTestService(t)

		mustCreate(t, svc, publishedReq("First"))
		mustCreate(t, svc, publishedReq("Second"))
		mustCreate(t, svc, publishedReq("Third"))

		page, err := svc.ListAdmin(models.PostFilters{})
		require.NoError(t, err)
		require.Len(t, page.Posts, 3)
		assert.Equal(t, "Third", page.Posts[0].Title)
		assert.Equal(t, "First", page.Posts[2].Title)
	})
}

func TestPagination(t *testing.T) {
	svc := newTestService(t)

	for i := 1; i <= 12; i++ {
		mustCreate(t, svc, publishedReq(fmt.Sprintf("Post %02d", i)))
	}

	t.Run("page slice and totals", func(t *testing.T) {
		page, err := svc.ListPublic(models.PostFilters{Page: 2, Limit: 5})
		require.NoError(t, err)

		assert.Equal(t, 12, page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 5, page.Limit)
		assert.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Posts, 5)
		// Newest first: page 2 holds posts 07 down to 03.
		assert.Equal(t, "Post 07", page.Posts[0].Title)
		assert.Equal(t, "Post 03", page.Posts[4].Title)
	})

	t.Run("pages past the end are empty", func(t *testing.T) {
		page, err := svc.ListPublic(models.PostFilters{Page: 4, Limit: 5})
		require.NoError(t, err)
		assert.Empty(t, page.Posts)
		assert.Equal(t, 12, page.Total)
	})

	t.Run("concatenated pages equal the full set", func(t *testing.T) {
		full, err := svc.ListPublic(models.PostFilters{Limit: 100})
		require.NoError(t, err)
		require.Len(t, full.Posts, 12)

		var concatenated []string
		for p := 1; p <= 3; p++ {
			page, err := svc.ListPublic(models.PostFilters{Page: p, Limit: 5})
			require.NoError(t, err)
			for _, post := range page.Posts {
				concatenated = append(concatenated, post.ID)
			}
		}

		fullIDs := make([]string, 0, len(full.Posts))
		for _, post := range full.Posts {
			fullIDs = append(fullIDs, post.ID)
		}
		assert.Equal(t, fullIDs, concatenated)
	})
}

func TestGetRelatedPosts(t *testing.T) {
	svc := newTestService(t)

	anchorReq := publishedReq("Anchor")
	anchorReq.CategoryID = "worship"
	anchorReq.Tags = []string{"praise"}
	anchor := mustCreate(t, svc, anchorReq)

	sameCategory := publishedReq("Same Category")
	sameCategory.CategoryID = "worship"
	mustCreate(t, svc, sameCategory)

	sameTag := publishedReq("Same Tag")
	sameTag.Tags = []string{"praise", "tour"}
	mustCreate(t, svc, sameTag)

	draftShared := draftReq("Draft Shared")
	draftShared.CategoryID = "worship"
	mustCreate(t, svc, draftShared)

	unrelated := publishedReq("Unrelated")
	unrelated.CategoryID = "news"
	mustCreate(t, svc, unrelated)

	t.Run("shares category or tag, excludes anchor and drafts", func(t *testing.T) {
		related, err := svc.GetRelatedPosts(anchor.Slug, 3)
		require.NoError(t, err)

		titles := make([]string, 0, len(related))
		for _, post := range related {
			assert.NotEqual(t, anchor.ID, post.ID)
			assert.Equal(t, models.PostStatusPublished, post.Status)
			titles = append(titles, post.Title)
		}
		assert.ElementsMatch(t, []string{"Same Category", "Same Tag"}, titles)
	})

	t.Run("limit truncates", func(t *testing.T) {
		related, err := svc.GetRelatedPosts(anchor.Slug, 1)
		require.NoError(t, err)
		assert.Len(t, related, 1)
	})

	t.Run("missing anchor yields empty list", func(t *testing.T) {
		related, err := svc.GetRelatedPosts("missing-slug", 3)
		require.NoError(t, err)
		assert.Empty(t, related)
	})
}

func TestSeed(t *testing.T) {
	t.Run("fills an empty store", func(t *testing.T) {
		svc := newTestService(t)

		require.NoError(t, svc.Seed())

		page, err := svc.ListAdmin(models.PostFilters{})
		require.NoError(t, err)
		assert.NotEmpty(t, page.Posts)

		categories, err := svc.GetCategories()
		require.NoError(t, err)
		assert.NotEmpty(t, categories)

		tags, err := svc.GetTags()
		require.NoError(t, err)
		assert.NotEmpty(t, tags)
	})

	t.Run("never overwrites existing data", func(t *testing.T) {
		svc := newTestService(t)

		post := mustCreate(t, svc, publishedReq("Already Here"))

		require.NoError(t, svc.Seed())

		page, err := svc.ListAdmin(models.PostFilters{})
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, post.ID, page.Posts[0].ID)
	})

	t.Run("is idempotent", func(t *testing.T) {
		svc := newTestService(t)

		require.NoError(t, svc.Seed())
		first, err := svc.ListAdmin(models.PostFilters{})
		require.NoError(t, err)

		require.NoError(t, svc.Seed())
		second, err := svc.ListAdmin(models.PostFilters{})
		require.NoError(t, err)

		assert.Equal(t, first.Total, second.Total)
	})
}
