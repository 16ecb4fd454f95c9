package lesson

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/testutil"
	"github.com/mo-amir99/langswap-server-go/pkg/cache"
	"github.com/mo-amir99/langswap-server-go/pkg/logger"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

func newLesson(title, category string, order int, mode types.LanguageMode, items ...LessonItem) Lesson {
	return Lesson{
		Title:        title,
		Category:     category,
		Description:  title + " lesson",
		Items:        items,
		Order:        order,
		LanguageMode: mode,
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *Catalog) {
	t.Helper()

	db := testutil.SetupTestDB(t, &Lesson{})
	catalog := NewCatalog(db, cache.NewMemoryCache(), time.Minute, logger.Discard())
	engine, api := testutil.NewRouter(t)
	RegisterRoutes(api, NewHandler(db, logger.Discard(), catalog))
	return engine, db, catalog
}

func TestListSortsByOrderAndFilters(t *testing.T) {
	db := testutil.SetupTestDB(t, &Lesson{})
	require.NoError(t, InsertAll(db, []Lesson{
		newLesson("Numbers", "numbers", 3, types.LanguageModeLearnThai),
		newLesson("Vowels", "alphabet", 2, types.LanguageModeLearnThai),
		newLesson("Consonants", "alphabet", 1, types.LanguageModeLearnThai),
		newLesson("Greetings", "conversations", 1, types.LanguageModeLearnEnglish),
	}))

	all, err := List(db, ListFilters{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"Consonants", "Greetings", "Vowels", "Numbers"},
		[]string{all[0].Title, all[1].Title, all[2].Title, all[3].Title})

	alphabet, err := List(db, ListFilters{Category: "alphabet"})
	require.NoError(t, err)
	require.Len(t, alphabet, 2)
	assert.Equal(t, "Consonants", alphabet[0].Title)

	english, err := List(db, ListFilters{LanguageMode: types.LanguageModeLearnEnglish})
	require.NoError(t, err)
	require.Len(t, english, 1)
	assert.Equal(t, "Greetings", english[0].Title)

	none, err := List(db, ListFilters{Category: "songs"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetRoundTripsListedIDs(t *testing.T) {
	db := testutil.SetupTestDB(t, &Lesson{})
	example := "กา (crow)"
	require.NoError(t, InsertAll(db, []Lesson{
		newLesson("Consonants", "alphabet", 1, types.LanguageModeLearnThai,
			LessonItem{TargetText: "ก", Romanization: "k", Translation: "Kor Kai (chicken)", Example: &example},
			LessonItem{TargetText: "ข", Romanization: "kh", Translation: "Khor Khai (egg)"},
		),
	}))

	listed, err := List(db, ListFilters{})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	got, err := Get(db, listed[0].ID)
	require.NoError(t, err)
	assert.Equal(t, listed[0].ID, got.ID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "ก", got.Items[0].TargetText)
	require.NotNil(t, got.Items[0].Example)
	assert.Equal(t, example, *got.Items[0].Example)
	assert.Nil(t, got.Items[1].Example)

	_, err = Get(db, uuid.New())
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestReplaceAllAndDeleteAll(t *testing.T) {
	db := testutil.SetupTestDB(t, &Lesson{})
	require.NoError(t, InsertAll(db, []Lesson{newLesson("Old", "misc", 1, types.LanguageModeLearnThai)}))

	seed, err := SeedLessons()
	require.NoError(t, err)
	require.NoError(t, ReplaceAll(db, seed))

	count, err := Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(len(seed)), count)

	deleted, err := DeleteAll(db)
	require.NoError(t, err)
	assert.Equal(t, int64(len(seed)), deleted)

	count, err = Count(db)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSeedLessonsDecodesBundledCatalog(t *testing.T) {
	seed, err := SeedLessons()
	require.NoError(t, err)
	require.NotEmpty(t, seed)

	modes := map[types.LanguageMode]int{}
	for _, l := range seed {
		assert.NotEmpty(t, l.Title)
		assert.NotEmpty(t, l.Items, l.Title)
		assert.Equal(t, uuid.Nil, l.ID)
		modes[l.LanguageMode]++
	}
	assert.Positive(t, modes[types.LanguageModeLearnThai])
	assert.Positive(t, modes[types.LanguageModeLearnEnglish])

	assert.Equal(t, "Thai Consonants", seed[0].Title)
	assert.Len(t, seed[0].Items, 44)
	assert.Equal(t, "ก", seed[0].Items[0].TargetText)

	again, err := SeedLessons()
	require.NoError(t, err)
	again[0].Title = "mutated"
	assert.Equal(t, "Thai Consonants", seed[0].Title)
}

func TestCatalogServesCachedListingUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	_, db, catalog := setupRouter(t)
	require.NoError(t, InsertAll(db, []Lesson{newLesson("Consonants", "alphabet", 1, types.LanguageModeLearnThai)}))

	first, err := catalog.List(ctx, ListFilters{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, InsertAll(db, []Lesson{newLesson("Vowels", "alphabet", 2, types.LanguageModeLearnThai)}))

	cached, err := catalog.List(ctx, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	filtered, err := catalog.List(ctx, ListFilters{Category: "alphabet"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	catalog.Invalidate(ctx)

	fresh, err := catalog.List(ctx, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestLessonEndpoints(t *testing.T) {
	router, db, _ := setupRouter(t)
	require.NoError(t, InsertAll(db, []Lesson{
		newLesson("Vowels", "alphabet", 2, types.LanguageModeLearnThai),
		newLesson("Consonants", "alphabet", 1, types.LanguageModeLearnThai),
	}))

	rec := testutil.SendRequest(t, router, http.MethodGet, "/api/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"LangSwap Language Learning API"}`, rec.Body.String())

	rec = testutil.SendRequest(t, router, http.MethodGet, "/api/lessons?category=alphabet&languageMode=learn-thai", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	listed := testutil.ParseResponse[[]Lesson](t, rec)
	require.Len(t, listed, 2)
	assert.Equal(t, "Consonants", listed[0].Title)

	rec = testutil.SendRequest(t, router, http.MethodGet, "/api/lessons/"+listed[1].ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := testutil.ParseResponse[Lesson](t, rec)
	assert.Equal(t, listed[1].ID, got.ID)
	assert.Equal(t, "Vowels", got.Title)

	rec = testutil.SendRequest(t, router, http.MethodGet, "/api/lessons?languageMode=learn-klingon", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.SendRequest(t, router, http.MethodGet, "/api/lessons/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid lesson ID")

	rec = testutil.SendRequest(t, router, http.MethodGet, "/api/lessons/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lesson not found")
}

func TestGetByIDTurnsLookupFailuresIntoBadRequest(t *testing.T) {
	router, db, _ := setupRouter(t)
	require.NoError(t, db.Migrator().DropTable(&Lesson{}))

	rec := testutil.SendRequest(t, router, http.MethodGet, "/api/lessons/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid lesson ID")
}
