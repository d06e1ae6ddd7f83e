package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/client/repositories/state"
	"github.com/dmitrijs2005/adminapi/internal/cryptox"
	"github.com/dmitrijs2005/adminapi/internal/dbx"
	"github.com/dmitrijs2005/adminapi/internal/logging"
)

// Keys of the persisted session in the state table.
const (
	credentialKey = "admin-user.credential"
	userKey       = "admin-user.profile"
)

const persistTimeout = 3 * time.Second

// PersistentStore is a MemoryStore mirrored to the local state database.
// Persistence failures are logged and never surface through Set or Clear:
// the in-memory value is authoritative for the running process.
type PersistentStore struct {
	*MemoryStore
	db         *sql.DB
	passphrase []byte
	log        logging.Logger

	// saveMu orders snapshots with their writes, so the last save always
	// reflects the latest in-memory state.
	saveMu sync.Mutex
}

// PersistentOption customises a PersistentStore.
type PersistentOption func(*PersistentStore)

// WithPassphrase seals the saved blobs with a key derived from passphrase.
func WithPassphrase(passphrase []byte) PersistentOption {
	return func(p *PersistentStore) {
		if len(passphrase) > 0 {
			p.passphrase = append([]byte(nil), passphrase...)
		}
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l logging.Logger) PersistentOption {
	return func(p *PersistentStore) {
		p.log = l
	}
}

// NewPersistentStore restores the saved session from db, if any. A saved
// session that cannot be read back (corrupt blob, wrong passphrase) is
// discarded with a warning so the user simply signs in again.
func NewPersistentStore(ctx context.Context, db *sql.DB, opts ...PersistentOption) (*PersistentStore, error) {
	p := &PersistentStore{
		MemoryStore: NewMemoryStore(),
		db:          db,
		log:         logging.Nop(),
	}
	for _, o := range opts {
		o(p)
	}

	if err := p.restore(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PersistentStore) restore(ctx context.Context) error {
	repo := state.NewSQLiteRepository(p.db)

	credBlob, err := repo.Get(ctx, credentialKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if credBlob == nil {
		return nil
	}

	var c Credential
	if err := p.decode(credBlob, &c); err != nil {
		p.log.Warn(ctx, "discarding saved session", "error", err)
		return p.wipe(ctx)
	}

	userBlob, err := repo.Get(ctx, userKey)
	if err != nil {
		return fmt.Errorf("restore profile: %w", err)
	}

	// populate without notifying: nobody is subscribed yet
	p.MemoryStore.cred = &c
	if userBlob != nil {
		var u UserInfo
		if err := p.decode(userBlob, &u); err != nil {
			p.log.Warn(ctx, "discarding saved profile", "error", err)
		} else {
			p.MemoryStore.user = &u
		}
	}
	return nil
}

func (p *PersistentStore) Set(c Credential) {
	p.MemoryStore.Set(c)
	p.persist()
}

func (p *PersistentStore) SetUser(u UserInfo) {
	p.MemoryStore.SetUser(u)
	p.persist()
}

func (p *PersistentStore) Clear() {
	p.MemoryStore.Clear()
	p.persist()
}

// persist writes the current credential and profile in one transaction.
// An absent credential removes both keys.
func (p *PersistentStore) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	cred, hasCred := p.MemoryStore.Get()
	user, hasUser := p.MemoryStore.User()

	err := dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := state.NewSQLiteRepository(tx)
		if !hasCred {
			return deleteSession(ctx, repo)
		}
		blob, err := p.encode(cred)
		if err != nil {
			return err
		}
		if err := repo.Set(ctx, credentialKey, blob); err != nil {
			return err
		}
		if !hasUser {
			return repo.Delete(ctx, userKey)
		}
		blob, err = p.encode(user)
		if err != nil {
			return err
		}
		return repo.Set(ctx, userKey, blob)
	})
	if err != nil {
		p.log.Error(ctx, "failed to save session", "error", err)
	}
}

func (p *PersistentStore) wipe(ctx context.Context) error {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return deleteSession(ctx, state.NewSQLiteRepository(tx))
	})
}

func deleteSession(ctx context.Context, repo state.Repository) error {
	if err := repo.Delete(ctx, credentialKey); err != nil {
		return err
	}
	return repo.Delete(ctx, userKey)
}

func (p *PersistentStore) encode(v any) ([]byte, error) {
	if len(p.passphrase) > 0 {
		return cryptox.Seal(v, p.passphrase)
	}
	return json.Marshal(v)
}

func (p *PersistentStore) decode(blob []byte, v any) error {
	if len(p.passphrase) > 0 {
		return cryptox.Open(blob, p.passphrase, v)
	}
	return json.Unmarshal(blob, v)
}
