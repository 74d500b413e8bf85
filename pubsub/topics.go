package pubsub

// Topic name keys for the pipeline's inbound and outbound streams.
const (
	// TopicScan is the name key associated with the planar laser scan stream.
	TopicScan = "scan"
	// TopicPosition is the name key associated with the odometry stream.
	TopicPosition = "position"
	// TopicCurrentGoal is the name key associated with the active goal point.
	TopicCurrentGoal = "current_goal"
	// TopicGoalInput is the name key associated with waypoint list edits.
	TopicGoalInput = "goal_input"
	// TopicBump is the name key associated with the bump switch.
	TopicBump = "bump"
	// TopicGPSFix is the name key associated with the robot's GPS fix.
	TopicGPSFix = "gps/fix"
	// TopicConeMarkers is the name key associated with detected cone positions.
	TopicConeMarkers = "cone_markers"
	// TopicConeAngle is the name key associated with the vision cone-angle estimate.
	TopicConeAngle = "top_cam/cone_angle"
	// TopicCmdVel is the name key associated with the published velocity command.
	TopicCmdVel = "cmd_vel"
	// TopicPath is the name key associated with the selected arc's sampled path.
	TopicPath = "path"
	// TopicGoalReached is the name key associated with arrival/abort events.
	TopicGoalReached = "goal_reached"
	// TopicMap is the name key associated with occupancy-grid snapshots.
	TopicMap = "map"
)
