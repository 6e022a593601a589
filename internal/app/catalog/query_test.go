package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() []Game {
	return []Game{
		{ID: 1, Title: "The Legend of Zelda", Genre: "Adventure"},
		{ID: 2, Title: "Doom Eternal", Genre: "Shooter"},
		{ID: 3, Title: "The Witcher 3", Genre: "RPG"},
		{ID: 4, Title: "Zelda II", Genre: "Adventure"},
		{ID: 5, Title: "Dota 2", Genre: "MOBA"},
	}
}

func titles(games []Game) []string {
	out := make([]string, 0, len(games))
	for _, g := range games {
		out = append(out, g.Title)
	}
	return out
}

func TestBuildView_NoQueryReturnsAll(t *testing.T) {
	t.Parallel()

	games := sampleCatalog()
	result := BuildView(games, Query{}, nil, nil)

	require.Len(t, result, len(games))
	assert.Equal(t, titles(games), titles(result))
}

func TestBuildView_NilCatalogReturnsEmpty(t *testing.T) {
	t.Parallel()

	result := BuildView(nil, Query{Search: "zelda"}, nil, nil)

	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestBuildView_SearchMatchesTitlePrefix(t *testing.T) {
	t.Parallel()

	games := sampleCatalog()

	result := BuildView(games, Query{Search: "zel"}, nil, nil)

	// "The Legend of Zelda" contains "zel" but does not start with it,
	// so a prefix match keeps only "Zelda II".
	assert.Equal(t, []string{"Zelda II"}, titles(result))
}

func TestBuildView_SearchIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	games := sampleCatalog()

	lower := BuildView(games, Query{Search: "do"}, nil, nil)
	upper := BuildView(games, Query{Search: "DO"}, nil, nil)

	require.Equal(t, titles(lower), titles(upper))
	assert.Equal(t, []string{"Doom Eternal", "Dota 2"}, titles(lower))
}

func TestBuildView_GenreMatchesExactly(t *testing.T) {
	t.Parallel()

	games := sampleCatalog()

	result := BuildView(games, Query{Genre: "Adventure"}, nil, nil)
	assert.Equal(t, []string{"The Legend of Zelda", "Zelda II"}, titles(result))

	// not a substring or case-folded match
	result = BuildView(games, Query{Genre: "adventure"}, nil, nil)
	assert.Empty(t, result)
}

func TestBuildView_EmptyGenreMeansAll(t *testing.T) {
	t.Parallel()

	games := sampleCatalog()
	result := BuildView(games, Query{Genre: ""}, nil, nil)

	assert.Len(t, result, len(games))
}

func TestBuildView_SearchAndGenreCompose(t *testing.T) {
	t.Parallel()

	games := sampleCatalog()
	result := BuildView(games, Query{Search: "the", Genre: "RPG"}, nil, nil)

	assert.Equal(t, []string{"The Witcher 3"}, titles(result))
}

func TestBuildView_FavoritesOnly(t *testing.T) {
	t.Parallel()

	games := sampleCatalog()
	favorites := map[int64]struct{}{2: {}, 4: {}}

	result := BuildView(games, Query{FavoritesOnly: true}, favorites, nil)
	assert.Equal(t, []string{"Doom Eternal", "Zelda II"}, titles(result))

	// nil set with the flag on yields nothing rather than everything
	result = BuildView(games, Query{FavoritesOnly: true}, nil, nil)
	assert.Empty(t, result)
}

func TestBuildView_RatedGamesSortBeforeUnrated(t *testing.T) {
	t.Parallel()

	games := sampleCatalog()
	ratings := map[int64]int{3: 2, 5: 4}

	result := BuildView(games, Query{}, nil, ratings)

	require.Len(t, result, len(games))
	assert.Equal(t, []string{"Dota 2", "The Witcher 3"}, titles(result[:2]))
	// unrated games keep their catalog order
	assert.Equal(t, []string{"The Legend of Zelda", "Doom Eternal", "Zelda II"}, titles(result[2:]))
}

func TestBuildView_WorstFirstFlipsRatedOrderOnly(t *testing.T) {
	t.Parallel()

	games := sampleCatalog()
	ratings := map[int64]int{1: 5, 2: 1, 3: 3}

	result := BuildView(games, Query{WorstFirst: true}, nil, ratings)

	require.Len(t, result, len(games))
	assert.Equal(t, []string{"Doom Eternal", "The Witcher 3", "The Legend of Zelda"}, titles(result[:3]))
	// rated games still lead even when worst-first
	assert.Equal(t, []string{"Zelda II", "Dota 2"}, titles(result[3:]))
}

func TestBuildView_NoRatingsKeepsCatalogOrder(t *testing.T) {
	t.Parallel()

	games := sampleCatalog()

	result := BuildView(games, Query{}, nil, map[int64]int{})

	assert.Equal(t, titles(games), titles(result))
}

func TestGenres_DistinctFirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	games := []Game{
		{ID: 1, Genre: "Shooter"},
		{ID: 2, Genre: "MMORPG"},
		{ID: 3, Genre: "Shooter"},
		{ID: 4, Genre: "Strategy"},
		{ID: 5, Genre: "MMORPG"},
	}

	assert.Equal(t, []string{"Shooter", "MMORPG", "Strategy"}, Genres(games))
}

func TestGenres_EmptyCatalog(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Genres(nil))
}
