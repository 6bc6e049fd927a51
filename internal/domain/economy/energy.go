package economy

// MineCostPerTick is the flat energy price of one tick of mining
const MineCostPerTick = 100

// moveCostScale is the energy a ship pays per tile when moving at max speed
const moveCostScale = 100

// MoveCostPerTile returns the energy cost of one tile at the given speed.
//
// Cost scales linearly with speed as a fraction of the ship's max speed,
// truncated toward zero. A ship without a max speed moves for free.
func MoveCostPerTile(speed, maxSpeed int) int {
	if maxSpeed <= 0 {
		return 0
	}
	return moveCostScale * speed / maxSpeed
}

// MineCost returns the total energy a mining order of the given duration consumes
func MineCost(duration int) int {
	return MineCostPerTick * duration
}

// Recharge returns the energy after elapsed ticks of linear recharge, clamped
// to maxEnergy. Energy already at or above the maximum is returned unchanged.
func Recharge(energy, maxEnergy int, elapsed uint64, rate int) int {
	if elapsed == 0 || energy >= maxEnergy || rate <= 0 {
		return energy
	}
	headroom := uint64(maxEnergy - energy)
	gain := elapsed * uint64(rate)
	// elapsed*rate can overflow for absurd gaps; anything past headroom is clamped anyway
	if gain/uint64(rate) != elapsed || gain > headroom {
		return maxEnergy
	}
	return energy + int(gain)
}

// AffordableTiles returns how many of the wanted tiles the energy budget pays for
func AffordableTiles(wanted, costPerTile, energy int) int {
	if costPerTile <= 0 {
		return wanted
	}
	if costPerTile*wanted <= energy {
		return wanted
	}
	return energy / costPerTile
}
