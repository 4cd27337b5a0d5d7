package storage

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket = []byte("config") // KDF iterations, timestamps, vault ID - unencrypted
	IndexBucket  = []byte("index")  // Public field list for ls/status - unencrypted
	ValuesBucket = []byte("values") // Encrypted field value blobs
	KeysBucket   = []byte("keys")   // Wrapped data key record
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigIters    = []byte("iterations")
	ConfigVaultID  = []byte("vault_id")
)

// KeyRecordKey is the keys-bucket key holding the wrapped data key
var KeyRecordKey = []byte("dek")

// Storage provides BBolt-based storage for ledgerlock
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a ledgerlock database
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Initialize creates the bucket structure for a new vault
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		// Create all buckets
		for _, bucket := range [][]byte{ConfigBucket, IndexBucket, ValuesBucket, KeysBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		// Set version
		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		// Set creation time
		now := time.Now()
		created, _ := now.MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// SetIterations stores the KDF iterations used by the current key record.
// Stored per vault so records remain decryptable if the default changes.
func (s *Storage) SetIterations(iterations uint32) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		iters := make([]byte, 4)
		binary.BigEndian.PutUint32(iters, iterations)
		return config.Put(ConfigIters, iters)
	})
}

// GetIterations retrieves the KDF iterations
func (s *Storage) GetIterations() (uint32, error) {
	var iterations uint32
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		iters := config.Get(ConfigIters)
		if iters == nil || len(iters) != 4 {
			return fmt.Errorf("iterations not found")
		}
		iterations = binary.BigEndian.Uint32(iters)
		return nil
	})
	return iterations, err
}

// SetKeyRecord stores the wrapped data key record, replacing any previous
// record wholesale
func (s *Storage) SetKeyRecord(record string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		keys := tx.Bucket(KeysBucket)
		return keys.Put(KeyRecordKey, []byte(record))
	})
}

// GetKeyRecord retrieves the wrapped data key record
func (s *Storage) GetKeyRecord() (string, error) {
	var record string
	err := s.db.View(func(tx *bolt.Tx) error {
		keys := tx.Bucket(KeysBucket)
		if keys == nil {
			return fmt.Errorf("keys bucket not found")
		}
		data := keys.Get(KeyRecordKey)
		if data == nil {
			return fmt.Errorf("key record not found")
		}
		record = string(data)
		return nil
	})
	return record, err
}

// UpdateModified updates the last modified timestamp
func (s *Storage) UpdateModified() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		now := time.Now()
		modified, _ := now.MarshalBinary()
		return config.Put(ConfigModified, modified)
	})
}

// GetModified retrieves the last modified timestamp
func (s *Storage) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// GetCreated retrieves the creation timestamp
func (s *Storage) GetCreated() (time.Time, error) {
	var created time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigCreated)
		if data == nil {
			return fmt.Errorf("created time not found")
		}
		return created.UnmarshalBinary(data)
	})
	return created, err
}

// GetVaultID retrieves the vault ID from config bucket
func (s *Storage) GetVaultID() (string, error) {
	var vaultID string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (s *Storage) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate vault ID: %w", err)
	}
	vaultID = hex.EncodeToString(b)

	err = s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

// FieldEntry represents a field in the public index
type FieldEntry struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"` // "amount" or "note"
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateIndex adds or replaces a field entry in the public index
func (s *Storage) UpdateIndex(entry FieldEntry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return index.Put([]byte(entry.Name), data)
	})
}

// RemoveFromIndex removes a field from the public index
func (s *Storage) RemoveFromIndex(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		return index.Delete([]byte(name))
	})
}

// GetIndex returns all entries in the public index
func (s *Storage) GetIndex() ([]FieldEntry, error) {
	var entries []FieldEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return fmt.Errorf("index bucket not found")
		}
		return index.ForEach(func(k, v []byte) error {
			var entry FieldEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	})
	return entries, err
}

// GetFieldEntry returns a single index entry, nil if the field is unknown
func (s *Storage) GetFieldEntry(name string) (*FieldEntry, error) {
	var entry *FieldEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return fmt.Errorf("index bucket not found")
		}
		data := index.Get([]byte(name))
		if data == nil {
			return nil // Field not in index
		}
		entry = &FieldEntry{}
		return json.Unmarshal(data, entry)
	})
	return entry, err
}

// PutValue stores an encrypted value blob for a field
func (s *Storage) PutValue(name, blob string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		values := tx.Bucket(ValuesBucket)
		return values.Put([]byte(name), []byte(blob))
	})
}

// GetValue retrieves the encrypted value blob for a field
func (s *Storage) GetValue(name string) (string, error) {
	var blob string
	err := s.db.View(func(tx *bolt.Tx) error {
		values := tx.Bucket(ValuesBucket)
		if values == nil {
			return fmt.Errorf("values bucket not found")
		}
		data := values.Get([]byte(name))
		if data == nil {
			return fmt.Errorf("value not found")
		}
		blob = string(data)
		return nil
	})
	return blob, err
}

// DeleteValue removes a field's encrypted value
func (s *Storage) DeleteValue(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		values := tx.Bucket(ValuesBucket)
		return values.Delete([]byte(name))
	})
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after removing fields from the vault.
func (s *Storage) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	// Create new database
	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	// Copy all buckets
	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	// Reopen database
	s.db, err = bolt.Open(srcPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}
