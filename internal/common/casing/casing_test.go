package casing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelKey(t *testing.T) {
	cases := map[string]string{
		"id":             "id",
		"user_id":        "userId",
		"comments_count": "commentsCount",
		"created_at":     "createdAt",
		"a_b_c":          "aBC",
		"Title":          "title",
		"already_Camel":  "alreadyCamel",
		"__leading":      "leading",
		"trailing_":      "trailing",
		"double__sep":    "doubleSep",
		"":               "",
		"_":              "",
		"url_ID":         "urlID",
		"élan_vital":     "élanVital",
	}
	for in, want := range cases {
		assert.Equal(t, want, CamelKey(in), "CamelKey(%q)", in)
	}
}

func TestCamelizeKeysNested(t *testing.T) {
	in := map[string]interface{}{
		"post_id": 1,
		"author_info": map[string]interface{}{
			"display_name": "Al",
			"home_page": map[string]interface{}{
				"page_url": "x",
			},
		},
		"tag_list": []interface{}{
			map[string]interface{}{"tag_name": "go"},
			"plain",
		},
		"deleted_at": nil,
	}

	out := CamelizeKeys(in)

	assert.Equal(t, 1, out["postId"])
	author := out["authorInfo"].(map[string]interface{})
	assert.Equal(t, "Al", author["displayName"])
	assert.Equal(t, "x", author["homePage"].(map[string]interface{})["pageUrl"])

	// list elements pass through untouched
	tags := out["tagList"].([]interface{})
	assert.Equal(t, map[string]interface{}{"tag_name": "go"}, tags[0])
	assert.Equal(t, "plain", tags[1])

	assert.Contains(t, out, "deletedAt")
	assert.Nil(t, out["deletedAt"])
	assert.Len(t, out, 4)
}

func TestCamelizeKeysDoesNotMutateInput(t *testing.T) {
	in := map[string]interface{}{"user_id": "u", "inner_map": map[string]interface{}{"x_y": 1}}

	CamelizeKeys(in)

	assert.Contains(t, in, "user_id")
	assert.Contains(t, in["inner_map"].(map[string]interface{}), "x_y")
}

func TestCamelizeKeysDeterministic(t *testing.T) {
	in := map[string]interface{}{"a_b": 1, "c_d": map[string]interface{}{"e_f": 2}}
	assert.Equal(t, CamelizeKeys(in), CamelizeKeys(in))
}

func TestFromStruct(t *testing.T) {
	type record struct {
		ID            string    `json:"id"`
		UserID        string    `json:"user_id"`
		CommentsCount int       `json:"comments_count"`
		CreatedAt     time.Time `json:"created_at"`
		Secret        string    `json:"-"`
	}
	ts := time.Date(2024, 10, 10, 18, 0, 0, 0, time.UTC)

	m, err := FromStruct(record{ID: "p1", UserID: "u1", CommentsCount: 5, CreatedAt: ts, Secret: "s"})
	require.NoError(t, err)

	assert.Equal(t, "p1", m["id"])
	assert.Equal(t, "u1", m["userId"])
	assert.Equal(t, json.Number("5"), m["commentsCount"])
	assert.Equal(t, "2024-10-10T18:00:00Z", m["createdAt"])
	assert.NotContains(t, m, "secret")
	assert.NotContains(t, m, "Secret")
}

func TestFromStructRejectsNonObject(t *testing.T) {
	_, err := FromStruct([]int{1, 2})
	assert.Error(t, err)
}

func TestCamelizeKeysCollisions(t *testing.T) {
	for i := 0; i < 50; i++ {
		out := CamelizeKeys(map[string]interface{}{"user_id": 1, "userId": 2})
		assert.Equal(t, map[string]interface{}{"userId": 2}, out)

		out = CamelizeKeys(map[string]interface{}{"_id": "a", "id": "b", "i_d": "c"})
		assert.Equal(t, "b", out["id"])

		out = CamelizeKeys(map[string]interface{}{"post__id": 1, "post_id": 2})
		assert.Equal(t, map[string]interface{}{"postId": 1}, out)
	}
}
