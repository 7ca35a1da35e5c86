package store

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/maruel/natural"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/studytrack/internal/models"
)

func (c *Client) listCatalog(bucket []byte) ([]string, error) {
	var names []string

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bucket).Cursor()

		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			names = append(names, string(k))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Sort(natural.StringSlice(names))

	return names, nil
}

func (c *Client) addCatalogItem(bucket []byte, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errNameRequired
	}

	// Re-adding an existing name overwrites it in place
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(name), []byte(name))
	})
}

func (c *Client) removeCatalogItem(bucket []byte, name string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(name))
	})
}

// Locations returns the known study locations in natural order.
func (c *Client) Locations() ([]string, error) {
	return c.listCatalog(locationsBucket)
}

// AddLocation records a study location. Adding a name that already exists
// is a no-op.
func (c *Client) AddLocation(name string) error {
	return c.addCatalogItem(locationsBucket, name)
}

// RemoveLocation forgets a study location. Removing an unknown name is a
// no-op.
func (c *Client) RemoveLocation(name string) error {
	return c.removeCatalogItem(locationsBucket, name)
}

// Equipment returns the known equipment names in natural order.
func (c *Client) Equipment() ([]string, error) {
	return c.listCatalog(equipmentBucket)
}

// AddEquipment records an equipment name.
func (c *Client) AddEquipment(name string) error {
	return c.addCatalogItem(equipmentBucket, name)
}

// RemoveEquipment forgets an equipment name.
func (c *Client) RemoveEquipment(name string) error {
	return c.removeCatalogItem(equipmentBucket, name)
}

// Profiles returns all saved profiles ordered naturally by name.
func (c *Client) Profiles() ([]models.Profile, error) {
	var profiles []models.Profile

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(profilesBucket).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var p models.Profile

			err := json.Unmarshal(v, &p)
			if err != nil {
				return err
			}

			profiles = append(profiles, p)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(profiles, func(i, j int) bool {
		return natural.Less(profiles[i].Name, profiles[j].Name)
	})

	return profiles, nil
}

// GetProfile retrieves a profile by name, or nil if it does not exist.
func (c *Client) GetProfile(name string) (*models.Profile, error) {
	var profile *models.Profile

	err := c.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(profilesBucket).Get([]byte(name))
		if len(value) == 0 {
			return nil
		}

		profile = &models.Profile{}

		return json.Unmarshal(value, profile)
	})

	return profile, err
}

// SaveProfile creates or overwrites a profile keyed by its name.
func (c *Client) SaveProfile(p *models.Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errNameRequired
	}

	value, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(profilesBucket).Put([]byte(p.Name), value)
	})
}

// RemoveProfile deletes a profile. Removing an unknown name is a no-op.
func (c *Client) RemoveProfile(name string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(profilesBucket).Delete([]byte(name))
	})
}

// RenameProfile changes a profile's name while keeping its contents. It
// fails if the new name is blank or the old name is unknown.
func (c *Client) RenameProfile(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errNameRequired
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(profilesBucket)

		value := b.Get([]byte(oldName))
		if value == nil {
			return errProfileNotFound
		}

		var p models.Profile

		err := json.Unmarshal(value, &p)
		if err != nil {
			return err
		}

		p.Name = newName

		updated, err := json.Marshal(&p)
		if err != nil {
			return err
		}

		err = b.Put([]byte(newName), updated)
		if err != nil {
			return err
		}

		return b.Delete([]byte(oldName))
	})
}

// Setting retrieves a settings value, or "" if the key has never been
// set.
func (c *Client) Setting(key string) (string, error) {
	var value string

	err := c.View(func(tx *bolt.Tx) error {
		value = string(tx.Bucket(settingsBucket).Get([]byte(key)))

		return nil
	})

	return value, err
}

// SetSetting stores a settings value under the given key.
func (c *Client) SetSetting(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errKeyRequired
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put([]byte(key), []byte(value))
	})
}

// RemoveSetting clears a settings key.
func (c *Client) RemoveSetting(key string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Delete([]byte(key))
	})
}
