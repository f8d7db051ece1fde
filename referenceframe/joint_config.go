package referenceframe

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/robomodel/robomodel/spatialmath"
)

// JointConfig is the description of a joint as produced by a loader.
type JointConfig struct {
	Name     string    `json:"name" yaml:"name"`
	ID       int       `json:"id" yaml:"id"`
	URDFID   int       `json:"urdf_id" yaml:"urdf_id"`
	BFSID    int       `json:"bfs_id" yaml:"bfs_id"`
	BFSLevel int       `json:"bfs_level" yaml:"bfs_level"`
	Type     string    `json:"type" yaml:"type"`
	Parent   string    `json:"parent" yaml:"parent"`
	Child    string    `json:"child" yaml:"child"`
	Axis     r3.Vector `json:"axis" yaml:"axis"`
	XYZ      r3.Vector `json:"xyz" yaml:"xyz"`
	RPY      r3.Vector `json:"rpy" yaml:"rpy"`
	Damping  float64   `json:"damping" yaml:"damping"`
}

// ParseConfig converts a JointConfig into a Joint with its transforms built.
func (cfg *JointConfig) ParseConfig(opts JointOptions) (*Joint, error) {
	if cfg.Name == "" {
		return nil, errors.New("joint config has no name")
	}
	j := NewJoint(cfg.Name, cfg.ID, cfg.Parent, cfg.Child, opts)
	j.SetURDFID(cfg.URDFID)
	j.SetBFSID(cfg.BFSID)
	j.SetBFSLevel(cfg.BFSLevel)
	j.SetDamping(cfg.Damping)

	origin := spatialmath.NewOrigin()
	origin.SetTranslation(spatialmath.NewTranslationFromVector(cfg.XYZ))
	origin.SetRotation(spatialmath.NewRotationFromVector(cfg.RPY))
	j.SetOrigin(origin)

	if err := j.SetType(JointType(cfg.Type), cfg.Axis); err != nil {
		return nil, err
	}
	return j, nil
}
