package orm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/store"
)

// memo is a trivial model for bucket tests.
type memo struct {
	Text string `json:"text"`
}

var _ Model = (*memo)(nil)

func (m *memo) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *memo) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

func (m *memo) Validate() error {
	if m.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

func (m *memo) Copy() Model {
	return &memo{Text: m.Text}
}

func newMemoBucket() Bucket {
	return NewBucket("memo", NewSimpleObj(nil, &memo{}))
}

func TestBucketSaveGetDelete(t *testing.T) {
	db := store.MemStore()
	b := newMemoBucket()

	key := []byte("first")

	obj, err := b.Get(db, key)
	require.NoError(t, err)
	assert.Nil(t, obj)

	err = b.Save(db, NewSimpleObj(key, &memo{Text: "hello"}))
	require.NoError(t, err)

	obj, err = b.Get(db, key)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, key, obj.Key())
	assert.Equal(t, "hello", obj.Value().(*memo).Text)

	require.NoError(t, b.Delete(db, key))

	obj, err = b.Get(db, key)
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestBucketRejectsInvalidModel(t *testing.T) {
	db := store.MemStore()
	b := newMemoBucket()

	err := b.Save(db, NewSimpleObj([]byte("k"), &memo{}))
	if !errors.ErrEmpty.Is(err) {
		t.Fatalf("want ErrEmpty, got %+v", err)
	}
}

func TestBucketIsolation(t *testing.T) {
	db := store.MemStore()
	first := newMemoBucket()
	second := NewBucket("other", NewSimpleObj(nil, &memo{}))

	key := []byte("shared")
	require.NoError(t, first.Save(db, NewSimpleObj(key, &memo{Text: "mine"})))

	obj, err := second.Get(db, key)
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestBucketGetPrefix(t *testing.T) {
	db := store.MemStore()
	b := newMemoBucket()

	for _, key := range []string{"ab1", "ab2", "ac3"} {
		require.NoError(t, b.Save(db, NewSimpleObj([]byte(key), &memo{Text: key})))
	}

	objs, err := b.GetPrefix(db, []byte("ab"))
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, []byte("ab1"), objs[0].Key())
	assert.Equal(t, []byte("ab2"), objs[1].Key())

	objs, err = b.GetPrefix(db, []byte("zz"))
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestPrefixEnd(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"simple":         {prefix: []byte{1, 2, 3}, want: []byte{1, 2, 4}},
		"trailing max":   {prefix: []byte{1, 2, 0xff}, want: []byte{1, 3}},
		"all max":        {prefix: []byte{0xff, 0xff}, want: nil},
		"single element": {prefix: []byte{7}, want: []byte{8}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, prefixEnd(tc.prefix))
		})
	}
}
