package urdf

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// robot represents the supported fields of a Universal Robot Description Format (URDF) file.
type robot struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Links   []link   `xml:"link"`
	Joints  []joint  `xml:"joint"`
}

// link is a struct which details the XML used in a URDF link element.
type link struct {
	XMLName  xml.Name  `xml:"link"`
	Name     string    `xml:"name,attr"`
	Inertial *inertial `xml:"inertial,omitempty"`
}

// joint is a struct which details the XML used in a URDF joint element.
type joint struct {
	XMLName  xml.Name  `xml:"joint"`
	Name     string    `xml:"name,attr"`
	Type     string    `xml:"type,attr"`
	Parent   frame     `xml:"parent"`
	Child    frame     `xml:"child"`
	Origin   *pose     `xml:"origin,omitempty"`
	Axis     *axis     `xml:"axis,omitempty"`
	Dynamics *dynamics `xml:"dynamics,omitempty"`
}

type frame struct {
	Link string `xml:"link,attr"`
}

type inertial struct {
	XMLName xml.Name `xml:"inertial"`
	Origin  *pose    `xml:"origin,omitempty"`
	Mass    struct {
		Value float64 `xml:"value,attr"`
	} `xml:"mass"`
	Inertia struct {
		IXX float64 `xml:"ixx,attr"`
		IXY float64 `xml:"ixy,attr"`
		IXZ float64 `xml:"ixz,attr"`
		IYY float64 `xml:"iyy,attr"`
		IYZ float64 `xml:"iyz,attr"`
		IZZ float64 `xml:"izz,attr"`
	} `xml:"inertia"`
}

type dynamics struct {
	XMLName  xml.Name `xml:"dynamics"`
	Damping  float64  `xml:"damping,attr"`
	Friction float64  `xml:"friction,attr"`
}

type axis struct {
	XMLName xml.Name `xml:"axis"`
	XYZ     string   `xml:"xyz,attr"` // "x y z" format
}

// Parse returns the axis, (1, 0, 0) when the element is absent.
func (a *axis) Parse() (r3.Vector, error) {
	if a == nil {
		return r3.Vector{X: 1}, nil
	}
	return spaceDelimitedStringToVector(a.XYZ)
}

type pose struct {
	XMLName xml.Name `xml:"origin"`
	RPY     string   `xml:"rpy,attr"` // Fixed frame angle "r p y" format, in radians
	XYZ     string   `xml:"xyz,attr"` // "x y z" format, in meters
}

// Parse returns the translation and the roll, pitch, yaw of the origin. An absent origin or
// attribute is zero.
func (p *pose) Parse() (xyz, rpy r3.Vector, err error) {
	if p == nil {
		return r3.Vector{}, r3.Vector{}, nil
	}
	if xyz, err = spaceDelimitedStringToVector(p.XYZ); err != nil {
		return r3.Vector{}, r3.Vector{}, errors.Wrap(err, "origin xyz")
	}
	if rpy, err = spaceDelimitedStringToVector(p.RPY); err != nil {
		return r3.Vector{}, r3.Vector{}, errors.Wrap(err, "origin rpy")
	}
	return xyz, rpy, nil
}

// spaceDelimitedStringToVector splits a space-delimited "x y z" field. An empty field is zero.
func spaceDelimitedStringToVector(s string) (r3.Vector, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return r3.Vector{}, nil
	}
	if len(fields) != 3 {
		return r3.Vector{}, errors.Errorf("expected 3 values but got %q", s)
	}
	var v [3]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "parsing %q", s)
		}
		v[i] = x
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}
