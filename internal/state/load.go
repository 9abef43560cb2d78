package state

import (
	"context"
	"fmt"
	"time"

	"github.com/kk-code-lab/rgallery/internal/catalog"
)

// ActiveCatalogLoadToken returns the token of the in-flight load, or 0.
func (s *AppState) ActiveCatalogLoadToken() int {
	if !s.CatalogLoading {
		return 0
	}
	return s.catalogLoadToken
}

func (s *AppState) nextCatalogLoadToken() int {
	s.catalogLoadToken++
	if s.catalogLoadToken == 0 {
		s.catalogLoadToken++
	}
	return s.catalogLoadToken
}

// loadCatalog fetches the catalog through the injected loader, or inline when
// no loader or dispatcher is wired.
func (r *StateReducer) loadCatalog(state *AppState) error {
	if state.CatalogSource == nil {
		state.LoadError = catalog.ErrEmptySource
		return nil
	}

	loader := state.CatalogLoader
	dispatch := state.getDispatch()
	if loader == nil || dispatch == nil {
		started := time.Now()
		entries, err := catalog.Load(context.Background(), state.CatalogSource, state.CatalogPaths)
		applyCatalogResult(state, catalog.LoadResult{
			Entries: entries,
			Elapsed: time.Since(started),
			Source:  state.CatalogSource.String(),
			Err:     err,
		})
		return nil
	}

	if prev := state.ActiveCatalogLoadToken(); prev != 0 {
		loader.Cancel(prev)
	}

	token := state.nextCatalogLoadToken()
	state.CatalogLoading = true
	state.LoadError = nil
	state.Logger.Info().Str("source", state.CatalogSource.String()).Int("token", token).Msg("catalog load started")

	loader.Start(catalog.LoadRequest{
		Token:  token,
		Source: state.CatalogSource,
		Paths:  state.CatalogPaths,
		Callback: func(result catalog.LoadResult) {
			dispatch(CatalogLoadedAction(result))
		},
	})
	return nil
}

// applyCatalogResult installs a finished load. A failed load leaves the
// catalog empty and every component working on the empty set.
func applyCatalogResult(state *AppState, result catalog.LoadResult) {
	state.CatalogLoading = false
	state.LoadElapsed = result.Elapsed

	if result.Err != nil {
		state.LoadError = fmt.Errorf("load catalog %s: %w", result.Source, result.Err)
		state.Logger.Error().Err(result.Err).Str("source", result.Source).Msg("catalog load failed")
		return
	}

	state.Store = catalog.NewStore(result.Entries)
	state.CatalogLoaded = true
	state.LoadError = nil
	state.recomputeView()
	state.Logger.Info().
		Int("entries", state.Store.Len()).
		Dur("elapsed", result.Elapsed).
		Str("source", result.Source).
		Msg("catalog loaded")

	if state.restorePending {
		state.resumeParkedRestore()
		return
	}
	state.trackAnchor()
}
