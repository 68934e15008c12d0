package json

import (
	"fmt"

	"github.com/fwojciec/mfm"
)

// nodeDTO is the JSON representation of a Node with a type discriminator.
type nodeDTO struct {
	Type     string            `json:"type"`
	Text     *string           `json:"text,omitempty"`
	URL      *string           `json:"url,omitempty"`
	Name     *string           `json:"name,omitempty"`
	Args     map[string]string `json:"args,omitempty"`
	Children []nodeDTO         `json:"children,omitempty"`
}

func marshalNodes(nodes []mfm.Node) ([]nodeDTO, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	result := make([]nodeDTO, len(nodes))
	for i, n := range nodes {
		dto, err := marshalNode(n)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		result[i] = dto
	}
	return result, nil
}

func marshalNode(n mfm.Node) (nodeDTO, error) {
	if v, ok := n.(mfm.Text); ok {
		return nodeDTO{Type: "text", Text: &v.Text}, nil
	}
	children, err := marshalNodes(mfm.Children(n))
	if err != nil {
		return nodeDTO{}, err
	}
	switch v := n.(type) {
	case mfm.Bold:
		return nodeDTO{Type: "bold", Children: children}, nil
	case mfm.Italic:
		return nodeDTO{Type: "italic", Children: children}, nil
	case mfm.Strike:
		return nodeDTO{Type: "strike", Children: children}, nil
	case mfm.Small:
		return nodeDTO{Type: "small", Children: children}, nil
	case mfm.Center:
		return nodeDTO{Type: "center", Children: children}, nil
	case mfm.Link:
		return nodeDTO{Type: "link", URL: &v.URL, Children: children}, nil
	case mfm.Function:
		return nodeDTO{Type: "function", Name: &v.Name, Args: v.Args, Children: children}, nil
	default:
		return nodeDTO{}, fmt.Errorf("unknown node type: %T", n)
	}
}

func unmarshalNodes(dtos []nodeDTO) ([]mfm.Node, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	result := make([]mfm.Node, len(dtos))
	for i, dto := range dtos {
		n, err := unmarshalNode(dto)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		result[i] = n
	}
	return result, nil
}

func unmarshalNode(dto nodeDTO) (mfm.Node, error) {
	if dto.Type == "text" {
		var text string
		if dto.Text != nil {
			text = *dto.Text
		}
		return mfm.Text{Text: text}, nil
	}
	children, err := unmarshalNodes(dto.Children)
	if err != nil {
		return nil, err
	}
	switch dto.Type {
	case "bold":
		return mfm.Bold{Children: children}, nil
	case "italic":
		return mfm.Italic{Children: children}, nil
	case "strike":
		return mfm.Strike{Children: children}, nil
	case "small":
		return mfm.Small{Children: children}, nil
	case "center":
		return mfm.Center{Children: children}, nil
	case "link":
		var url string
		if dto.URL != nil {
			url = *dto.URL
		}
		return mfm.Link{URL: url, Children: children}, nil
	case "function":
		var name string
		if dto.Name != nil {
			name = *dto.Name
		}
		var args map[string]string
		if len(dto.Args) > 0 {
			args = dto.Args
		}
		return mfm.Function{Name: name, Args: args, Children: children}, nil
	default:
		return nil, fmt.Errorf("unknown node type: %q", dto.Type)
	}
}
