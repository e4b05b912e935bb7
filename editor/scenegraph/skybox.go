package scenegraph

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/quarry3d/quarry/common"
)

// buildSkybox decodes the six face images in parallel through a bounded
// worker pool. Any face failing to decode degrades the whole skybox to nil:
// a partial cube map renders worse than none at all.
func buildSkybox(cfg *skyboxConfig, workers int) *Skybox {
	pool := worker.NewDynamicWorkerPool(workers, 8, 1*time.Second)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		faces  [6]common.TextureData
		failed bool
	)

	for i := 0; i < 6; i++ {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()

				var (
					data common.TextureData
					err  error
				)
				if len(cfg.faceData[idx]) > 0 {
					data, err = common.DecodeTexture(cfg.faceData[idx])
				} else {
					data, err = common.DecodeTextureFile(cfg.facePaths[idx])
				}

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					log.Printf("scenegraph: skybox face %d decode failed: %v", idx, err)
					failed = true
					return nil, err
				}
				faces[idx] = data
				return nil, nil
			},
		})
	}
	wg.Wait()

	if failed {
		return nil
	}
	return &Skybox{Faces: faces}
}
