package events

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/purgehub/purgehub/internal/purge"
)

const (
	SourceGeneric   = "generic"
	SourceWordPress = "wordpress"
)

func init() {
	MustRegister(SourceGeneric, AdapterFunc(decodeGeneric))
	MustRegister(SourceWordPress, AdapterFunc(decodeWordPress))
}

// decodeGeneric 解析扁平结构：
//
//	{"old_status":"draft","new_status":"publish","content_type":"post","url":"https://..."}
func decodeGeneric(body []byte) (purge.Transition, error) {
	return decodeFields(body, fieldPaths{
		oldStatus:   "old_status",
		newStatus:   "new_status",
		contentType: "content_type",
		url:         "url",
	})
}

// decodeWordPress 解析 transition_post_status 钩子转发的结构：
//
//	{"new_status":"publish","old_status":"draft","post":{"ID":1,"post_type":"post"},"permalink":"https://..."}
func decodeWordPress(body []byte) (purge.Transition, error) {
	return decodeFields(body, fieldPaths{
		oldStatus:   "old_status",
		newStatus:   "new_status",
		contentType: "post.post_type",
		url:         "permalink",
	})
}

type fieldPaths struct {
	oldStatus   string
	newStatus   string
	contentType string
	url         string
}

func decodeFields(body []byte, paths fieldPaths) (purge.Transition, error) {
	if !gjson.ValidBytes(body) {
		return purge.Transition{}, fmt.Errorf("%w: malformed json", ErrInvalidPayload)
	}

	results := gjson.GetManyBytes(body, paths.oldStatus, paths.newStatus, paths.contentType, paths.url)
	for i, name := range []string{paths.oldStatus, paths.newStatus, paths.contentType} {
		if strings.TrimSpace(results[i].String()) == "" {
			return purge.Transition{}, fmt.Errorf("%w: missing %s", ErrInvalidPayload, name)
		}
	}

	return purge.Transition{
		OldStatus:   purge.Status(results[0].String()),
		NewStatus:   purge.Status(results[1].String()),
		ContentType: results[2].String(),
		URL:         strings.TrimSpace(results[3].String()),
	}, nil
}
