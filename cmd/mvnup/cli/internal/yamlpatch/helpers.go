package yamlpatch

import (
	"gopkg.in/yaml.v3"
)

// FindVersionWantNode returns the scalar node holding the pinned maven
// version (the "want" key under the top-level "version" mapping), or nil when
// the document does not carry one.
func FindVersionWantNode(doc *yaml.Node) *yaml.Node {
	versionNode := findMappingValue(doc, "version")
	if versionNode == nil {
		return nil
	}
	return findMappingValue(versionNode, "want")
}

func findMappingValue(mapNode *yaml.Node, key string) *yaml.Node {
	// each element is the k=v pair in a map
	for idx, v := range mapNode.Content {
		if idx%2 == 0 && v.Value == key {
			return mapNode.Content[idx+1]
		}
	}
	return nil
}

func GetYamlNode(s any) (*yaml.Node, error) {
	var n yaml.Node

	by, err := yaml.Marshal(s)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(by, &n)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
