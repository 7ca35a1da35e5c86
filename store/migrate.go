package store

import (
	"bytes"
	"strconv"

	"go.etcd.io/bbolt"
)

// schemaVersion is the version new databases are created at. Version 1
// databases stored the pause reason under the legacy "label" field.
const schemaVersion = 2

var versionKey = []byte("schema_version")

// migratePauses rewrites pause records that still carry the legacy
// "label" field under its current name.
func migratePauses(tx *bbolt.Tx) error {
	bucket := tx.Bucket(pausesBucket)

	cur := bucket.Cursor()

	stale := make(map[string][]byte)

	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		if !bytes.Contains(v, []byte(`"label"`)) {
			continue
		}

		stale[string(k)] = bytes.Replace(
			v,
			[]byte(`"label"`),
			[]byte(`"reason"`),
			1,
		)
	}

	for k, v := range stale {
		err := bucket.Put([]byte(k), v)
		if err != nil {
			return err
		}
	}

	return nil
}

func migrate(tx *bbolt.Tx) error {
	meta := tx.Bucket(metaBucket)

	version, _ := strconv.Atoi(string(meta.Get(versionKey)))

	if version < 2 {
		err := migratePauses(tx)
		if err != nil {
			return err
		}
	}

	if version < schemaVersion {
		return meta.Put(versionKey, []byte(strconv.Itoa(schemaVersion)))
	}

	return nil
}
