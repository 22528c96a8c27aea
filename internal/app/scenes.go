package app

import (
	"motionkb/internal/scene"
)

// Analyze extracts features from scene source without registering them.
func (a *App) Analyze(sceneID, source string) (scene.Analysis, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return scene.Analysis{}, ErrNotInitialized
	}
	return a.analyzer.Analyze(sceneID, source), nil
}

// AnalyzeAndRegister analyses scene source and stores the features in the
// scene index, replacing any record with the same id.
func (a *App) AnalyzeAndRegister(sceneID, source string) (scene.Analysis, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return scene.Analysis{}, ErrNotInitialized
	}
	analysis := a.analyzer.Analyze(sceneID, source)
	a.scenes.Register(analysis.Features)
	return analysis, nil
}

func (a *App) Scene(id string) (scene.Features, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return scene.Features{}, false, ErrNotInitialized
	}
	f, ok := a.scenes.Get(id)
	if !ok {
		return scene.Features{}, false, nil
	}
	return *f, true, nil
}

func (a *App) Scenes() ([]scene.Features, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	all := a.scenes.All()
	out := make([]scene.Features, 0, len(all))
	for _, f := range all {
		out = append(out, *f)
	}
	return out, nil
}

func (a *App) SearchScenes(q scene.Query, limit int) ([]scene.Match, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	return a.scenes.Search(q, limit), nil
}

// SimilarScenes returns scenes resembling id. ok is false when id is not
// registered.
func (a *App) SimilarScenes(id string, limit int) ([]scene.Match, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.initialized {
		return nil, false, ErrNotInitialized
	}
	if _, ok := a.scenes.Get(id); !ok {
		return []scene.Match{}, false, nil
	}
	return a.scenes.Similar(id, limit), true, nil
}
