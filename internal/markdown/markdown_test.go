package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		source       string
		wantContains []string
		wantMissing  []string
	}{
		{
			name:         "heading and paragraph",
			source:       "# Delivery note\n\nShipped today.",
			wantContains: []string{"<h1>Delivery note</h1>", "<p>Shipped today.</p>"},
		},
		{
			name:         "placeholders pass through",
			source:       "Dear {{customer.name}},",
			wantContains: []string{"{{customer.name}}"},
		},
		{
			name:         "block markers on their own lines survive",
			source:       "{{#each lines}}\n**{{qty}}** {{description}}\n\n{{/each}}",
			wantContains: []string{"{{#each lines}}", "<strong>{{qty}}</strong>", "{{/each}}"},
		},
		{
			name:         "gfm table",
			source:       "| Item | Qty |\n| ---- | --- |\n| Widget | 2 |",
			wantContains: []string{"<table>", "<th>Item</th>", "<td>Widget</td>"},
		},
		{
			name:         "script is stripped",
			source:       "Hello\n\n<script>alert(1)</script>",
			wantContains: []string{"<p>Hello</p>"},
			wantMissing:  []string{"<script>"},
		},
		{
			name:        "event handlers are stripped",
			source:      `<p onclick="steal()">x</p>`,
			wantMissing: []string{"onclick"},
		},
		{
			name:         "blockquote survives",
			source:       "> Fragile, this side up.",
			wantContains: []string{"<blockquote>"},
		},
	}

	conv := NewConverter()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML(%q) unexpected error: %v", tt.source, err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML(%q) = %q, missing %q", tt.source, got, want)
				}
			}
			for _, missing := range tt.wantMissing {
				if strings.Contains(got, missing) {
					t.Errorf("ToHTML(%q) = %q, should not contain %q", tt.source, got, missing)
				}
			}
		})
	}
}
