// Package filestore implementa el Record Store sobre un archivo JSON local con las colecciones
// clients, drivers, silos, dispatches y cement_inputs. El archivo se reescribe completo en cada
// mutación confirmada. Con path vacío el store vive solo en memoria.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jhoicas/planta-despachos/internal/domain/entity"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
	"github.com/jhoicas/planta-despachos/pkg/logger"
)

// Store mantiene el estado en memoria protegido por un mutex.
type Store struct {
	mu   sync.Mutex
	path string
	db   *dataset
	log  *logger.Logger
}

// Open carga el archivo en path (si existe). Con path vacío no persiste nada.
func Open(path string, log *logger.Logger) (*Store, error) {
	s := &Store{path: path, db: newDataset(), log: log.Named("filestore")}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Info().Str("path", path).Msg("archivo de datos no existe, se creará en la primera escritura")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: leer %s: %w", path, err)
	}
	var f fileLayout
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("filestore: parsear %s: %w", path, err)
		}
	}
	s.db = f.toDataset()
	s.log.Info().
		Str("path", path).
		Int("silos", len(s.db.silos)).
		Int("dispatches", len(s.db.dispatches)).
		Msg("datos cargados")
	return s, nil
}

// Repos devuelve repositorios fuera de transacción: cada mutación se confirma por separado.
func (s *Store) Repos() repository.Repos {
	return newRepos(&session{store: s})
}

// Run ejecuta fn con repositorios atados a una copia de trabajo. Si fn devuelve error la copia
// se descarta; si no, se escribe el archivo y la copia pasa a ser el estado vigente.
// Mientras dura fn el store queda bloqueado para otros escritores y lectores.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(func(work *dataset) error {
		return fn(newRepos(&session{store: s, tx: work}))
	})
}

func (s *Store) commitLocked(fn func(work *dataset) error) error {
	work := s.db.clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := s.flush(work); err != nil {
		return err
	}
	s.db = work
	return nil
}

// flush reescribe el archivo completo (escritura a temporal + rename).
func (s *Store) flush(db *dataset) error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(fromDataset(db), "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: serializar: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("filestore: crear directorio: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("filestore: escribir: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("filestore: reemplazar archivo: %w", err)
	}
	return nil
}

// session resuelve sobre qué estado opera un repositorio: la copia de la transacción en curso
// (tx != nil, el mutex ya está tomado) o el estado vigente.
type session struct {
	store *Store
	tx    *dataset
}

func (ss *session) read(fn func(db *dataset) error) error {
	if ss.tx != nil {
		return fn(ss.tx)
	}
	ss.store.mu.Lock()
	defer ss.store.mu.Unlock()
	return fn(ss.store.db)
}

func (ss *session) write(fn func(db *dataset) error) error {
	if ss.tx != nil {
		return fn(ss.tx)
	}
	ss.store.mu.Lock()
	defer ss.store.mu.Unlock()
	return ss.store.commitLocked(fn)
}

func newRepos(ss *session) repository.Repos {
	return repository.Repos{
		Silos:        &siloRepo{ss: ss},
		Dispatches:   &dispatchRepo{ss: ss},
		Clients:      &clientRepo{ss: ss},
		Drivers:      &driverRepo{ss: ss},
		CementInputs: &cementInputRepo{ss: ss},
	}
}

// dataset estado en memoria indexado por ID.
type dataset struct {
	clients      map[string]entity.Client
	drivers      map[string]entity.Driver
	silos        map[string]entity.Silo
	dispatches   map[string]entity.Dispatch
	cementInputs map[string]entity.CementInput
	dispatchSeq  int
}

func newDataset() *dataset {
	return &dataset{
		clients:      map[string]entity.Client{},
		drivers:      map[string]entity.Driver{},
		silos:        map[string]entity.Silo{},
		dispatches:   map[string]entity.Dispatch{},
		cementInputs: map[string]entity.CementInput{},
	}
}

func (db *dataset) clone() *dataset {
	out := newDataset()
	for k, v := range db.clients {
		out.clients[k] = v
	}
	for k, v := range db.drivers {
		out.drivers[k] = v
	}
	for k, v := range db.silos {
		out.silos[k] = v
	}
	for k, v := range db.dispatches {
		out.dispatches[k] = v
	}
	for k, v := range db.cementInputs {
		out.cementInputs[k] = v
	}
	out.dispatchSeq = db.dispatchSeq
	return out
}

// sortedValues devuelve los valores de m ordenados por less.
func sortedValues[T any](m map[string]T, less func(a, b T) bool) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// page aplica limit/offset sobre una lista ya ordenada. limit <= 0 devuelve todo desde offset.
func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
