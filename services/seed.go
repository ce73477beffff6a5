package services

import (
	"time"

	"github.com/google/uuid"

	"gospelcms/models"
)

// Seed fills empty record sets with the bootstrap fixture. It never touches a
// set that already has data, so calling it on every startup is safe.
func (s *BlogService) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	categories, err := loadSet[models.Category](s.store, categoriesKey)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		categories = seedCategories(now)
		if err := saveSet(s.store, categoriesKey, categories); err != nil {
			return err
		}
	}

	tags, err := loadSet[models.Tag](s.store, tagsKey)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		if err := saveSet(s.store, tagsKey, seedTags(now)); err != nil {
			return err
		}
	}

	posts, err := loadSet[models.Post](s.store, postsKey)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		if err := saveSet(s.store, postsKey, seedPosts(categories, now)); err != nil {
			return err
		}
	}

	return nil
}

func seedCategories(now time.Time) []models.Category {
	return []models.Category{
		{ID: "worship", Name: "Worship", Slug: "worship", Description: "Songs and reflections on worship", CreatedAt: now, UpdatedAt: now},
		{ID: "testimonies", Name: "Testimonies", Slug: "testimonies", Description: "Stories of faith from the road", CreatedAt: now, UpdatedAt: now},
		{ID: "behind-the-music", Name: "Behind the Music", Slug: "behind-the-music", Description: "Studio notes and songwriting", CreatedAt: now, UpdatedAt: now},
	}
}

func seedTags(now time.Time) []models.Tag {
	return []models.Tag{
		{ID: uuid.New().String(), Name: "worship", Slug: "worship", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Name: "praise", Slug: "praise", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Name: "studio", Slug: "studio", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Name: "tour", Slug: "tour", CreatedAt: now, UpdatedAt: now},
	}
}

func seedPosts(categories []models.Category, now time.Time) []models.Post {
	entries := []struct {
		title      string
		excerpt    string
		content    string
		categoryID string
		tags       []string
		views      int
	}{
		{
			title:      "A New Season of Worship",
			excerpt:    "What the new album taught me about waiting on God.",
			content:    "<p>Every record starts in a quiet room. This one started in a season of waiting...</p>",
			categoryID: "worship",
			tags:       []string{"worship", "praise"},
			views:      42,
		},
		{
			title:      "From the Studio: Recording the Choir",
			excerpt:    "Thirty voices, one take, and a story behind every harmony.",
			content:    "<p>We brought the whole choir into the room for the title track...</p>",
			categoryID: "behind-the-music",
			tags:       []string{"studio"},
			views:      17,
		},
		{
			title:      "Testimony Night in Atlanta",
			excerpt:    "The night the concert stopped and the stories started.",
			content:    "<p>Halfway through the Atlanta show we put the setlist down...</p>",
			categoryID: "testimonies",
			tags:       []string{"tour", "praise"},
			views:      63,
		},
	}

	posts := make([]models.Post, 0, len(entries))
	taken := make(map[string]bool)
	for i, entry := range entries {
		// Stagger creation times so the default newest-first ordering is stable.
		createdAt := now.Add(-time.Duration(i) * time.Hour)
		publishedAt := createdAt
		slug := uniqueSlug(entry.title, taken)
		taken[slug] = true

		post := models.Post{
			ID:           uuid.New().String(),
			Title:        entry.title,
			Slug:         slug,
			Content:      entry.content,
			Excerpt:      entry.excerpt,
			CategoryID:   entry.categoryID,
			CategoryName: resolveCategoryName(categories, entry.categoryID),
			Tags:         entry.tags,
			Status:       models.PostStatusPublished,
			AuthorName:   "Editorial Team",
			Views:        entry.views,
			PublishedAt:  &publishedAt,
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		}
		applyMetaDefaults(&post)
		posts = append(posts, post)
	}
	return posts
}
