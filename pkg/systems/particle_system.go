package systems

import "github.com/Fannzxyl/kotoba-test/pkg/components"

// UpdateParticles 移动粒子并衰减生命值
// 每帧 Life 减少 decayRate*dt，Life<=0 的粒子从列表中移除
//
// 返回:
//   - 仍然存活的粒子（复用原切片底层数组）
func UpdateParticles(particles []*components.ParticleComponent, decayRate, dt float64) []*components.ParticleComponent {
	alive := particles[:0]
	for _, p := range particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= decayRate * dt
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	for i := len(alive); i < len(particles); i++ {
		particles[i] = nil
	}
	return alive
}
