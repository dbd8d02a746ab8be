package daemon

import (
	"time"

	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"go.uber.org/zap"
)

// Daemon owns the archive lifecycle: mappings on startup, then a periodic
// flush of buffered index requests.
type Daemon struct {
	elastic        elastic_search.Index
	persistTimeout time.Duration
}

func NewDaemon(elastic elastic_search.Index) *Daemon {
	return &Daemon{elastic: elastic, persistTimeout: 5 * time.Second}
}

func (d *Daemon) Execute() {
	d.elastic.InstallMappings()

	zap.L().Info("Daemon Started")

	for {
		time.Sleep(d.persistTimeout)
		d.elastic.Persist()
	}
}
