package gconf

import (
	"encoding/json"
	"testing"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/store"
	"github.com/stretchr/testify/assert"
)

type testConf struct {
	Name string `json:"name"`
	Num  int64  `json:"num"`
}

func (c *testConf) Marshal() ([]byte, error) { return json.Marshal(c) }
func (c *testConf) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}
func (c *testConf) Validate() error {
	if c.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

func TestSaveAndLoad(t *testing.T) {
	db := store.MemStore()

	src := testConf{Name: "alice", Num: 42}
	assert.NoError(t, Save(db, "testpkg", &src))

	var dst testConf
	assert.NoError(t, Load(db, "testpkg", &dst))
	assert.Equal(t, src, dst)
}

func TestSaveInvalid(t *testing.T) {
	db := store.MemStore()
	err := Save(db, "testpkg", &testConf{Num: 1})
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var dst testConf
	err := Load(db, "nosuchpkg", &dst)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	opts := remittance.Options{
		"conf": json.RawMessage(`{"testpkg": {"name": "bob", "num": 7}}`),
	}
	var conf testConf
	assert.NoError(t, InitConfig(db, opts, "testpkg", &conf))
	assert.Equal(t, "bob", conf.Name)

	var loaded testConf
	assert.NoError(t, Load(db, "testpkg", &loaded))
	assert.Equal(t, int64(7), loaded.Num)
}

func TestInitConfigMissingPackage(t *testing.T) {
	db := store.MemStore()
	opts := remittance.Options{
		"conf": json.RawMessage(`{"otherpkg": {}}`),
	}
	var conf testConf
	err := InitConfig(db, opts, "testpkg", &conf)
	assert.True(t, errors.ErrNotFound.Is(err))
}
