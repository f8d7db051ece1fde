package kinematics

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/robomodel/robomodel/referenceframe"
)

// ParallelFactor is the default number of joints built at once.
var ParallelFactor = runtime.GOMAXPROCS(0)

// BuildJoints builds a joint for every config, up to workers at a time (ParallelFactor if workers
// is not positive). Joints are returned in config order regardless of which finishes first. Every
// failing config is reported.
func BuildJoints(
	ctx context.Context,
	cfgs []referenceframe.JointConfig,
	opts referenceframe.JointOptions,
	workers int,
) ([]*referenceframe.Joint, error) {
	if workers <= 0 {
		workers = ParallelFactor
	}
	joints := make([]*referenceframe.Joint, len(cfgs))
	errs := make([]error, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfgs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			joints[i], errs[i] = cfgs[i].ParseConfig(opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "building joints")
	}
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}
	return joints, nil
}

// Build builds the joints of cfgs with the robot's options and adds them, followed by links, in
// order.
func (r *Robot) Build(ctx context.Context, cfgs []referenceframe.JointConfig, links []*referenceframe.Link, workers int) error {
	joints, err := BuildJoints(ctx, cfgs, r.opts.JointOptions(r.logger), workers)
	if err != nil {
		return err
	}
	for _, j := range joints {
		r.AddJoint(j)
	}
	for _, l := range links {
		r.AddLink(l)
	}
	r.logger.Infow("built robot model",
		"robot", r.name,
		"joints", r.NumJoints(),
		"links", r.NumLinks(),
		"num_pos", r.NumPos(),
		"num_vel", r.NumVel(),
	)
	return nil
}
