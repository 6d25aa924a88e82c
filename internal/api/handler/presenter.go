package handler

import (
	"github.com/KostiukVM/BlogAPI/internal/common/casing"
	"github.com/KostiukVM/BlogAPI/internal/domain/model"
)

// The present* helpers shape persistence models into camelCase wire records.

type record = map[string]interface{}

func presentUser(u *model.User) (record, error) {
	return casing.FromStruct(u)
}

func presentPost(p *model.Post) (record, error) {
	return casing.FromStruct(p)
}

func presentPosts(posts []model.Post) ([]record, error) {
	out := make([]record, 0, len(posts))
	for i := range posts {
		rec, err := presentPost(&posts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// presentPostWithComments embeds the already camelized comments; the casing
// adapter does not descend into lists.
func presentPostWithComments(p *model.PostWithComments) (record, error) {
	rec, err := presentPost(&p.Post)
	if err != nil {
		return nil, err
	}
	comments, err := presentComments(p.Comments)
	if err != nil {
		return nil, err
	}
	rec["comments"] = comments
	return rec, nil
}

func presentPostsWithComments(posts []model.PostWithComments) ([]record, error) {
	out := make([]record, 0, len(posts))
	for i := range posts {
		rec, err := presentPostWithComments(&posts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func presentComment(c *model.Comment) (record, error) {
	return casing.FromStruct(c)
}

func presentComments(comments []model.Comment) ([]record, error) {
	out := make([]record, 0, len(comments))
	for i := range comments {
		rec, err := presentComment(&comments[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
