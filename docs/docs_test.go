package docs

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocRenders(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc failed: %v", err)
	}
	if !json.Valid([]byte(doc)) {
		t.Fatalf("rendered swagger doc is not valid JSON")
	}
	for _, path := range []string{"/onboarding", "/api/messages", "/ws/chat"} {
		if !strings.Contains(doc, `"`+path+`"`) {
			t.Errorf("swagger doc is missing %s", path)
		}
	}
}
