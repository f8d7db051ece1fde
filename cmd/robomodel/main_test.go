package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

const arm = `<robot name="arm">
  <link name="base"/><link name="upper"/><link name="lower"/>
  <joint name="shoulder" type="revolute">
    <parent link="base"/><child link="upper"/><origin xyz="0 0 1"/><axis xyz="0 0 1"/>
  </joint>
  <joint name="elbow" type="revolute">
    <parent link="upper"/><child link="lower"/><origin xyz="1 0 0"/><axis xyz="1 0 0"/>
  </joint>
</robot>`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	err := app.Run(append([]string{"robomodel"}, args...))
	return out.String(), err
}

func writeURDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arm.urdf")
	test.That(t, os.WriteFile(path, []byte(arm), 0o600), test.ShouldBeNil)
	return path
}

func TestSummary(t *testing.T) {
	out, err := run(t, "--urdf", writeURDF(t), "summary")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "arm: 2 joints, 2 positions, 2 velocities")
	test.That(t, out, test.ShouldContainSubstring, "elbow")
}

func TestSummaryFromConfig(t *testing.T) {
	dir := filepath.Dir(writeURDF(t))
	cfgPath := filepath.Join(dir, "robot.yaml")
	test.That(t, os.WriteFile(cfgPath, []byte("urdf: arm.urdf\nfloating_base: true\nusing_quaternion: true\n"), 0o600),
		test.ShouldBeNil)

	out, err := run(t, "-c", cfgPath, "--name", "floater")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "floater: 3 joints, 9 positions, 8 velocities")
}

func TestTransform(t *testing.T) {
	path := writeURDF(t)
	out, err := run(t, "--urdf", path, "transform", "--joint", "shoulder", "--theta", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "homogeneous transform")
	test.That(t, out, test.ShouldContainSubstring, "spatial transform")

	_, err = run(t, "--urdf", path, "transform", "--joint", "wrist")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMissingURDF(t *testing.T) {
	_, err := run(t, "summary")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGraph(t *testing.T) {
	out, err := run(t, "--urdf", writeURDF(t), "graph")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "digraph")
	test.That(t, out, test.ShouldContainSubstring, "shoulder (revolute) z")
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"floating_base"`)
}

func TestLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "robomodel.log")
	_, err := run(t, "--urdf", writeURDF(t), "--log-file", logPath, "--debug", "summary")
	test.That(t, err, test.ShouldBeNil)

	//nolint:gosec
	data, err := os.ReadFile(logPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldContainSubstring, "built robot model")
	test.That(t, string(data), test.ShouldContainSubstring, "built joint transform")
}

func TestFlagsCompleteConfig(t *testing.T) {
	urdfPath := writeURDF(t)
	cfgPath := filepath.Join(t.TempDir(), "robot.yaml")
	test.That(t, os.WriteFile(cfgPath, []byte("floating_base: true\n"), 0o600), test.ShouldBeNil)

	out, err := run(t, "-c", cfgPath, "--urdf", urdfPath, "summary")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "arm: 3 joints, 8 positions, 8 velocities")

	// still rejected when nothing supplies the urdf
	_, err = run(t, "-c", cfgPath, "summary")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"urdf" is required`)
}
