package slip

import (
	"context"
	"sync"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Task una línea de vale pendiente de aplicar contra el libro de movimientos.
type Task struct {
	Slip   *entity.Slip
	Detail *entity.SlipDetail
}

// Processor pool de workers que procesa líneas de vale en background.
// El despacho es posterior al commit del estado del vale: quien completa el
// vale no espera ni observa el resultado de las líneas. Las tareas corren
// hasta PROCESSED o FAILED, sin cancelación ni timeout.
type Processor struct {
	tasks    chan Task
	workers  int
	handler  func(ctx context.Context, t Task)
	log      *logger.Logger
	wg       sync.WaitGroup
	stopOnce sync.Once

	// mu protege stopped: un Enqueue que corre en paralelo con Stop no debe
	// enviar a un canal cerrado.
	mu      sync.RWMutex
	stopped bool
}

// NewProcessor construye el pool. handler aplica una línea y registra su
// estado final; nunca debe hacer panic hacia el worker.
func NewProcessor(workers, queueSize int, handler func(ctx context.Context, t Task), log *logger.Logger) *Processor {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Processor{
		tasks:   make(chan Task, queueSize),
		workers: workers,
		handler: handler,
		log:     log,
	}
}

// Start lanza los workers. ctx se propaga a cada tarea; una tarea ya
// iniciada corre hasta terminar aunque ctx se cancele (sin cancelación
// a mitad de asiento).
func (p *Processor) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(worker int) {
			defer p.wg.Done()
			for t := range p.tasks {
				queueDepth.Dec()
				p.handler(ctx, t)
			}
			p.log.Debug().Int("worker", worker).Msg("worker de vales detenido")
		}(i)
	}
	p.log.Info().Int("workers", p.workers).Msg("pool de procesamiento de vales iniciado")
}

// Enqueue encola una tarea. Bloquea si la cola está llena; el tamaño de la
// cola se dimensiona por configuración. Devuelve false si el pool ya está
// detenido: la tarea no se encola y la línea queda PENDING para Redispatch.
func (p *Processor) Enqueue(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	queueDepth.Inc()
	p.tasks <- t
	return true
}

// Stop cierra la cola y espera a que los workers drenen las tareas
// pendientes. Idempotente.
func (p *Processor) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()
		close(p.tasks)
	})
	p.wg.Wait()
}
